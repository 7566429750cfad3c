package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/cassiomolin/lucene-example/internal/search"
	"github.com/charmbracelet/lipgloss"
)

// Demo query arguments.
var (
	DemoPersonName    = "John Doe"
	DemoItem          = "Milk"
	DemoListDateFrom  = domain.NewDate(2017, 1, 1)
	DemoListDateTo    = domain.NewDate(2017, 1, 2)
	DemoGender        = "female"
	DemoSalaryLow     = int64(70000)
	DemoSalaryHigh    = int64(75000)
	DemoBornFrom      = domain.NewDate(1980, 1, 1)
	DemoBornTo        = domain.NewDate(1989, 12, 31)
	demoHeaderDivider = strings.Repeat("-", 46)
)

// Printer writes records in the demo's plain key: value layout under styled
// section headers. Colors are dropped when the writer is not a terminal.
type Printer struct {
	w      io.Writer
	header lipgloss.Style
	rule   lipgloss.Style
	label  lipgloss.Style
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		rule:   r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		label:  r.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
	}
}

// Section prints a header.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintf(p.w, "\n%s\n%s\n", p.header.Render(title), p.rule.Render(demoHeaderDivider))
}

func (p *Printer) field(name, value string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.label.Render(name+":"), value)
}

// ShoppingList prints one list.
func (p *Printer) ShoppingList(l domain.ShoppingList) {
	p.field("file", l.SourceFileName)
	p.field("name", l.Name)
	p.field("date", l.Date.String())
	p.field("items", strings.Join(l.Items, ", "))
	_, _ = fmt.Fprintln(p.w)
}

// Profile prints one profile.
func (p *Printer) Profile(pr domain.Profile) {
	p.field("id", pr.ID)
	p.field("name", pr.Name)
	p.field("gender", pr.Gender)
	p.field("dateOfBirth", pr.DateOfBirth.String())
	p.field("jobTitle", pr.JobTitle)
	p.field("salary", fmt.Sprintf("%d", pr.Salary))
	_, _ = fmt.Fprintln(p.w)
}

type demoStep struct {
	title string
	run   func(context.Context, *search.Catalog, *Printer) error
}

func listStep(title string, find func(context.Context, *search.ShoppingLists) ([]domain.ShoppingList, error)) demoStep {
	return demoStep{title: title, run: func(ctx context.Context, c *search.Catalog, p *Printer) error {
		lists, err := find(ctx, c.ShoppingLists)
		if err != nil {
			return err
		}
		for _, l := range lists {
			p.ShoppingList(l)
		}
		return nil
	}}
}

func profileStep(title string, find func(context.Context, *search.Profiles) ([]domain.Profile, error)) demoStep {
	return demoStep{title: title, run: func(ctx context.Context, c *search.Catalog, p *Printer) error {
		profiles, err := find(ctx, c.Profiles)
		if err != nil {
			return err
		}
		for _, pr := range profiles {
			p.Profile(pr)
		}
		return nil
	}}
}

var demoSteps = []demoStep{
	listStep("Find all shopping lists", func(ctx context.Context, s *search.ShoppingLists) ([]domain.ShoppingList, error) {
		return s.FindAll(ctx)
	}),
	listStep("Find shopping lists by person name", func(ctx context.Context, s *search.ShoppingLists) ([]domain.ShoppingList, error) {
		return s.FindByPersonName(ctx, DemoPersonName)
	}),
	listStep("Find shopping lists by item", func(ctx context.Context, s *search.ShoppingLists) ([]domain.ShoppingList, error) {
		return s.FindByItem(ctx, DemoItem)
	}),
	listStep("Find shopping lists date range", func(ctx context.Context, s *search.ShoppingLists) ([]domain.ShoppingList, error) {
		return s.FindByDateRange(ctx, DemoListDateFrom, DemoListDateTo)
	}),
	profileStep("Find all profiles", func(ctx context.Context, s *search.Profiles) ([]domain.Profile, error) {
		return s.FindAll(ctx)
	}),
	profileStep("Find profiles by gender", func(ctx context.Context, s *search.Profiles) ([]domain.Profile, error) {
		return s.FindByGender(ctx, DemoGender)
	}),
	profileStep("Find profiles by salary range", func(ctx context.Context, s *search.Profiles) ([]domain.Profile, error) {
		return s.FindBySalaryRange(ctx, DemoSalaryLow, DemoSalaryHigh)
	}),
	profileStep("Find profiles by date of birth range", func(ctx context.Context, s *search.Profiles) ([]domain.Profile, error) {
		return s.FindByDateOfBirthRange(ctx, DemoBornFrom, DemoBornTo)
	}),
}

// RunDemo runs the demonstration queries against catalog and prints each
// result to w. It stops at the first failing query.
func RunDemo(ctx context.Context, catalog *search.Catalog, w io.Writer) error {
	p := NewPrinter(w)
	for _, step := range demoSteps {
		p.Section(step.title)
		if err := step.run(ctx, catalog, p); err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(step.title), err)
		}
	}
	return nil
}
