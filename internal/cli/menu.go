package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"vocab/internal/card"
	"vocab/internal/config"
	"vocab/internal/deck"
	"vocab/internal/export"
	"vocab/internal/schedule"
	"vocab/internal/vocab"
)

// menu is the interactive main loop: a numbered menu offering review,
// list, advance-session, export, and exit.
type menu struct {
	io         *IO
	in         lineSource
	log        *slog.Logger
	prog       *deck.Program
	exportPath string
	cfg        config.Config
}

func (m *menu) run() {
	for {
		m.io.Println()
		m.io.Println("--- Vocabulary Trainer Menu ---")
		m.io.Printf("Current Session Number: %d\n", m.prog.CurrentSession())
		m.io.Println("1. Start Review Session")
		m.io.Println("2. List All Cards")
		m.io.Println("3. Advance Session Number (without review)")
		m.io.Println("4. Export Study Deck")
		m.io.Println("5. Exit")

		choice, err := m.in.Prompt("Enter your choice: ")
		if err != nil {
			// End of input counts as exit; save first.
			m.io.Println()
			m.exit()

			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.review()
		case "2":
			m.list()
		case "3":
			m.advance()
		case "4":
			m.export()
		case "5":
			m.exit()

			return
		case "":
			continue
		default:
			m.io.Println("Invalid choice. Please try again.")
			m.log.Warn("invalid menu choice", "choice", choice)
		}
	}
}

func (m *menu) review() {
	prompter := &consolePrompter{io: m.io, in: m.in}
	session := schedule.NewSession(prompter, m.log)

	err := m.prog.StartReview(session)

	switch {
	case err == nil:
		m.io.Println()
		m.io.Println("--- Review Session Ended ---")
	case errors.Is(err, io.EOF):
		m.io.Println()
		m.io.Println("Review aborted. Progress so far was saved.")
	default:
		m.io.ErrPrintln("warning:", err)
	}
}

func (m *menu) list() {
	cards := m.prog.ListAll()

	m.io.Println()
	m.io.Println("--- All Cards ---")

	if len(cards) == 0 {
		m.io.Printf("No cards loaded. Add rows to %s.\n", m.cfg.VocabFile)

		return
	}

	for _, c := range cards {
		m.io.Println(formatCard(c))
	}

	m.io.Println("----------------------")
}

func formatCard(c card.Card) string {
	var builder strings.Builder

	if c.ID != "" {
		builder.WriteString("ID: " + c.ID + " | ")
	}

	fmt.Fprintf(&builder, "'%s' -> '%s'", c.Front, c.Back)

	if c.Annotation != "" {
		fmt.Fprintf(&builder, " (%s)", c.Annotation)
	}

	fmt.Fprintf(&builder, " | State: %s | Last Reviewed Session: %d | Next Review: Session %d",
		c.State, c.LastReviewedSession, c.NextReviewSession())

	return builder.String()
}

func (m *menu) advance() {
	err := m.prog.AdvanceSession()
	if err != nil {
		m.io.ErrPrintln("warning:", err)
	}

	m.io.Printf("Session number advanced to %d.\n", m.prog.CurrentSession())
}

func (m *menu) export() {
	records := recordsFromCards(m.prog.Cards())

	err := export.WriteDeck(m.exportPath, "Vocabulary", records, m.cfg.RowsPerSlide)
	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			m.io.Println("No vocabulary data to export.")

			return
		}

		m.io.ErrPrintln("error:", err)

		return
	}

	m.io.Printf("Exported study deck to %s.\n", m.exportPath)
	m.log.Info("study deck exported", "path", m.exportPath, "records", len(records))
}

// recordsFromCards recovers the source-ordered vocabulary table from
// the live card set; cards carry all content fields verbatim.
func recordsFromCards(cards []card.Card) []vocab.Record {
	records := make([]vocab.Record, 0, len(cards))

	for _, c := range cards {
		records = append(records, vocab.Record{
			ID:         c.ID,
			Front:      c.Front,
			Back:       c.Back,
			Annotation: c.Annotation,
		})
	}

	return records
}

func (m *menu) exit() {
	err := m.prog.Persist()
	if err != nil {
		m.io.ErrPrintln("warning:", err)
	}

	m.io.Println("Exiting. Goodbye!")
	m.log.Info("program exited")
}
