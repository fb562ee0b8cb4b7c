package cli

import (
	"vocab/internal/card"
	"vocab/internal/schedule"
)

// consolePrompter is the interactive surface of the review loop,
// implementing schedule.Prompter over the line source.
type consolePrompter struct {
	io *IO
	in lineSource
}

func (p *consolePrompter) Begin(session, due int) {
	p.io.Println()
	p.io.Printf("--- Starting Review Session %d ---\n", session)

	if due == 0 {
		p.io.Println("No cards due for review this session. Good job!")

		return
	}

	p.io.Printf("You have %d cards to review.\n", due)
}

func (p *consolePrompter) Present(c card.Card, pos, total int) error {
	p.io.Println()
	p.io.Printf("--- Card %d/%d ---\n", pos, total)

	if c.ID != "" {
		p.io.Println("ID:", c.ID)
	}

	p.io.Println("Current State:", c.State)
	p.io.Println("Front:", c.Front)

	_, err := p.in.Prompt("Press Enter to reveal the back...")
	if err != nil {
		return err
	}

	p.io.Println("Back:", c.Back)

	if c.Annotation != "" {
		p.io.Println("Annotation:", c.Annotation)
	}

	return nil
}

// Ask re-prompts indefinitely on invalid input; only end of input stops
// it.
func (p *consolePrompter) Ask(card.Card) (schedule.Response, error) {
	for {
		line, err := p.in.Prompt("Did you get it right? (y/n/skip): ")
		if err != nil {
			return 0, err
		}

		resp, ok := schedule.ParseResponse(line)
		if !ok {
			p.io.Println("Invalid input. Please enter 'y' for yes, 'n' for no, or 'skip'.")

			continue
		}

		return resp, nil
	}
}

func (p *consolePrompter) Applied(c card.Card, resp schedule.Response) {
	switch resp {
	case schedule.Correct:
		p.io.Println("Correct! Card moved to state:", c.State)
	case schedule.Incorrect:
		p.io.Println("Incorrect. Card moved to state:", c.State)
	case schedule.Skipped:
		p.io.Println("Skipping this card for now.")
	}
}
