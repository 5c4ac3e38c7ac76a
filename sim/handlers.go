package sim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mlowen/simcore/engine/dialogue"
	"github.com/mlowen/simcore/types"
)

func (g *Game) handleMove(cmd types.Command) []string {
	w := g.World

	if cmd.Target == "" && cmd.Direction != "" {
		dest, ok := g.place().Exits[cmd.Direction]
		if !ok {
			return []string{fmt.Sprintf("You can't go %s from here.", cmd.Direction)}
		}
		return g.moveTo(dest)
	}

	if cmd.Target == "" {
		g.session.Dialogue().Open(dialogue.State{
			Kind:        dialogue.Incomplete,
			Action:      "move",
			MissingSlot: "location",
			Partial:     cmd,
			Prompt:      "Where do you want to go?",
		})
		return nil
	}

	place, ok := g.resolvePlace(cmd.Target)
	if !ok {
		return []string{fmt.Sprintf("You don't know the way to %q.", cmd.Target)}
	}
	if place.ID == w.Location {
		return []string{fmt.Sprintf("You're already at %s.", place.Name)}
	}
	return g.moveTo(place.ID)
}

func (g *Game) moveTo(placeID string) []string {
	w := g.World
	w.Location = placeID
	w.advance(1)
	w.spendEnergy(2)

	out := []string{fmt.Sprintf("You head over to %s.", g.place().Name)}
	return append(out, g.describeHere()...)
}

func (g *Game) handleTalk(cmd types.Command) []string {
	w := g.World

	if cmd.Target == "" {
		present := g.peopleAt(w.Location)
		switch len(present) {
		case 0:
			return []string{"There's no one here to talk to."}
		case 1:
			cmd.Target = present[0]
		default:
			options := make([]string, 0, len(present))
			for _, id := range present {
				options = append(options, g.Defs.People[id].Name)
			}
			g.session.Dialogue().Open(dialogue.State{
				Kind:    dialogue.Clarification,
				Action:  "talk",
				Options: options,
				Extra:   map[string]string{"topic": cmd.Topic},
				Prompt:  "Who do you want to talk to? " + numberedList(options),
			})
			return nil
		}
	}

	person, ok := g.resolvePerson(cmd.Target)
	if !ok {
		return []string{fmt.Sprintf("You don't know anyone called %q.", cmd.Target)}
	}
	if person.Location != w.Location {
		return []string{fmt.Sprintf("%s isn't here right now.", person.Name)}
	}

	line := person.Default
	if cmd.Topic != "" {
		if l, found := topicLine(person, cmd.Topic); found {
			line = l
		} else if line == "" {
			line = fmt.Sprintf("I don't know anything about %s.", cmd.Topic)
		}
	}
	if line == "" {
		line = "Hello there."
	}
	return []string{fmt.Sprintf("%s says: '%s'", person.Name, line)}
}

// topicLine finds the dialogue line for a topic: exact key first, then
// loose containment either way.
func topicLine(person types.PersonDef, topic string) (string, bool) {
	topic = strings.ToLower(topic)
	if line, ok := person.Topics[topic]; ok {
		return line, true
	}
	for key, line := range person.Topics {
		k := strings.ToLower(key)
		if strings.Contains(topic, k) || strings.Contains(k, topic) {
			return line, true
		}
	}
	return "", false
}

func (g *Game) handleExamine(cmd types.Command) []string {
	if cmd.Target == "" {
		g.session.Dialogue().Open(dialogue.State{
			Kind:        dialogue.Incomplete,
			Action:      "examine",
			MissingSlot: "target",
			Partial:     cmd,
			Prompt:      "What do you want to take a closer look at?",
		})
		return nil
	}

	if place, ok := g.resolvePlace(cmd.Target); ok {
		return []string{place.Name + ": " + place.Description}
	}
	if person, ok := g.resolvePerson(cmd.Target); ok {
		desc := fmt.Sprintf("%s. You'd usually find them at %s.",
			person.Name, g.Defs.Places[person.Location].Name)
		return []string{desc}
	}
	if biz, ok := g.resolveBusiness(cmd.Target); ok {
		status := fmt.Sprintf("asking price %s", money(biz.Price))
		if g.World.Owns(biz.ID) {
			status = "yours"
		}
		return []string{fmt.Sprintf("%s — %s, about %s/day in takings.", biz.Name, status, money(biz.Income))}
	}
	return []string{fmt.Sprintf("You don't see anything special about %q.", cmd.Target)}
}

func (g *Game) handleLook() []string {
	return g.describeHere()
}

func (g *Game) describeHere() []string {
	w := g.World
	place := g.place()

	out := []string{place.Name, place.Description}

	if len(place.Exits) > 0 {
		dirs := make([]string, 0, len(place.Exits))
		for dir := range place.Exits {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		out = append(out, "Exits: "+strings.Join(dirs, ", "))
	}

	if present := g.peopleAt(w.Location); len(present) > 0 {
		names := make([]string, 0, len(present))
		for _, id := range present {
			names = append(names, g.Defs.People[id].Name)
		}
		out = append(out, "You see: "+strings.Join(names, ", "))
	}

	for _, id := range g.businessesAt(w.Location) {
		biz := g.Defs.Businesses[id]
		if w.Owns(id) {
			out = append(out, fmt.Sprintf("%s is yours.", biz.Name))
		} else {
			out = append(out, fmt.Sprintf("%s is up for sale (%s).", biz.Name, money(biz.Price)))
		}
	}
	return out
}

func (g *Game) handleWork() []string {
	w := g.World
	if w.Job == "" {
		return []string{"You don't have a job. Try applying somewhere that's hiring."}
	}
	if w.Energy < energyPerShift {
		return []string{"You're too exhausted to work a shift. Get some sleep first."}
	}

	job := g.Defs.Places[w.Job]
	var out []string
	if w.Location != w.Job {
		w.Location = w.Job
		out = append(out, fmt.Sprintf("You make your way to %s.", job.Name))
	}

	pay := job.Wage * shiftHours
	w.Money += pay
	w.advance(shiftHours)
	w.spendEnergy(energyPerShift)
	out = append(out, fmt.Sprintf("You work an %d-hour shift at %s and earn %s.", shiftHours, job.Name, money(pay)))
	return out
}

func (g *Game) handleSleep(cmd types.Command) []string {
	w := g.World
	hours := cmd.Duration
	if hours <= 0 {
		hours = 8
	}

	days := w.advance(hours)
	w.restoreEnergy(hours * energyPerRest)

	out := []string{fmt.Sprintf("You sleep for %d hours and wake up feeling better.", hours)}
	if days > 0 {
		if income := g.collectIncome(days); income > 0 {
			out = append(out, fmt.Sprintf("Your businesses brought in %s while you slept.", money(income)))
		}
	}
	return out
}

// collectIncome credits per-day takings from owned businesses.
func (g *Game) collectIncome(days int) int {
	total := 0
	for _, id := range g.World.Owned {
		total += g.Defs.Businesses[id].Income * days
	}
	g.World.Money += total
	return total
}

func (g *Game) handleEat(cmd types.Command) []string {
	w := g.World
	place := g.place()

	if cmd.Target != "" {
		if p, ok := g.resolvePlace(cmd.Target); ok && p.MealPrice > 0 {
			if p.ID != w.Location {
				w.Location = p.ID
				w.advance(1)
			}
			place = p
		}
	}

	if place.MealPrice <= 0 {
		return []string{fmt.Sprintf("There's nothing to eat at %s.", place.Name)}
	}
	if w.Money < place.MealPrice {
		return []string{fmt.Sprintf("A meal here costs %s and you can't cover it.", money(place.MealPrice))}
	}

	w.Money -= place.MealPrice
	w.restoreEnergy(mealEnergy)
	w.advance(1)
	return []string{fmt.Sprintf("You have a meal at %s for %s.", place.Name, money(place.MealPrice))}
}

func (g *Game) handleLoan(cmd types.Command) []string {
	w := g.World

	if cmd.Amount <= 0 {
		g.session.Dialogue().Open(dialogue.State{
			Kind:        dialogue.Incomplete,
			Action:      "loan",
			MissingSlot: "amount",
			Partial:     cmd,
			Prompt:      "How much do you want to borrow?",
		})
		return nil
	}

	amount := cmd.Amount
	owed := amount + amount*LoanRate/100
	if w.LoanBalance+owed > MaxDebt {
		return []string{fmt.Sprintf("The bank won't let your debt go past %s.", money(MaxDebt))}
	}

	ctrl := g.session.Dialogue()
	ctrl.Open(dialogue.State{
		Kind:   dialogue.YesNo,
		Extra:  map[string]string{"amount": strconv.Itoa(amount)},
		Prompt: fmt.Sprintf("Borrow %s at %d%% interest (%s owed)? (yes/no)", money(amount), LoanRate, money(owed)),
		OnConfirm: func() {
			w.Money += amount
			w.LoanBalance += owed
			ctrl.Emit(fmt.Sprintf("The loan clears. You now have %s and owe %s.", money(w.Money), money(w.LoanBalance)))
		},
		OnCancel: func() {
			ctrl.Emit("You decide against borrowing.")
		},
	})
	return nil
}

func (g *Game) handleApply() []string {
	w := g.World
	place := g.place()

	if place.Wage <= 0 {
		return []string{fmt.Sprintf("Nobody is hiring at %s.", place.Name)}
	}
	if w.Job == place.ID {
		return []string{fmt.Sprintf("You already work at %s.", place.Name)}
	}

	w.Job = place.ID
	return []string{fmt.Sprintf("You apply at %s and get the job — %s an hour.", place.Name, money(place.Wage))}
}

func (g *Game) handleBuy(cmd types.Command) []string {
	w := g.World

	if cmd.Target == "" {
		g.session.Dialogue().Open(dialogue.State{
			Kind:        dialogue.Incomplete,
			Action:      "buy",
			MissingSlot: "business",
			Partial:     cmd,
			Prompt:      "What do you want to buy?",
		})
		return nil
	}

	biz, ok := g.resolveBusiness(cmd.Target)
	if !ok {
		return []string{fmt.Sprintf("%q isn't for sale around here.", cmd.Target)}
	}
	if w.Owns(biz.ID) {
		return []string{fmt.Sprintf("You already own %s.", biz.Name)}
	}

	if !cmd.Confirmed {
		g.session.Dialogue().Open(dialogue.State{
			Kind:    dialogue.Confirmation,
			Action:  "buy",
			Details: map[string]string{"target": biz.ID},
			Prompt:  fmt.Sprintf("Buy %s for %s? (yes/no)", biz.Name, money(biz.Price)),
		})
		return nil
	}

	if w.Money < biz.Price {
		return []string{fmt.Sprintf("You need %s to buy %s — you only have %s.", money(biz.Price), biz.Name, money(w.Money))}
	}
	w.Money -= biz.Price
	w.Owned = append(w.Owned, biz.ID)
	return []string{fmt.Sprintf("The papers are signed. %s is yours.", biz.Name)}
}

// handleContentIntent covers intents registered by Lua content. They
// have no dedicated handler, so they are treated as conversation: the
// intent name becomes the topic.
func (g *Game) handleContentIntent(cmd types.Command) []string {
	if cmd.Name == "" || cmd.Name == "unknown" {
		return g.handleUnknown(cmd)
	}
	known := false
	for _, def := range g.Defs.Intents {
		if def.Name == cmd.Name {
			known = true
			break
		}
	}
	if !known {
		return g.handleUnknown(cmd)
	}
	talk := cmd
	talk.Topic = cmd.Name
	return g.handleTalk(talk)
}

func (g *Game) handleUnknown(cmd types.Command) []string {
	if cmd.Raw != "" {
		return []string{fmt.Sprintf("You're not sure how to %q.", cmd.Raw)}
	}
	return []string{"You're not sure what you mean by that."}
}

func numberedList(options []string) string {
	parts := make([]string, 0, len(options))
	for i, opt := range options {
		parts = append(parts, fmt.Sprintf("%d) %s", i+1, opt))
	}
	return strings.Join(parts, "  ")
}
