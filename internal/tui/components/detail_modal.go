package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/gtondello/ShopifyProductSearchApp/internal/core/styles"
)

const (
	detailModalMaxWidth  = 100
	detailModalMaxHeight = 30
	detailModalMargin    = 4
	detailModalChrome    = 6
	detailModalPadding   = 4
)

// DetailModal shows a single product rendered as markdown.
type DetailModal struct {
	record   catalog.Record
	viewport viewport.Model
	status   string
}

// NewDetailModal creates a detail modal sized for a width x height screen.
func NewDetailModal(r catalog.Record, width, height int) DetailModal {
	modalWidth := min(width-detailModalMargin, detailModalMaxWidth)
	modalHeight := min(height-detailModalMargin, detailModalMaxHeight)

	vp := viewport.New(
		viewport.WithWidth(max(modalWidth-detailModalPadding, 10)),
		viewport.WithHeight(max(modalHeight-detailModalChrome, 3)),
	)

	m := DetailModal{record: r, viewport: vp}
	m.renderContent(modalWidth - detailModalPadding)
	return m
}

// DetailMarkdown renders a record as a markdown document.
func DetailMarkdown(r catalog.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Type | %s |\n", orDash(r.ProductType))
	fmt.Fprintf(&b, "| Vendor | %s |\n", orDash(r.Vendor))
	fmt.Fprintf(&b, "| Inventory | %s |\n", InventoryText(r))
	fmt.Fprintf(&b, "| Tags | %s |\n", orDash(r.TagList()))
	if r.HasImage() {
		alt := r.ImageAltText
		if alt == "" {
			alt = r.Title
		}
		fmt.Fprintf(&b, "| Image | [%s](%s) |\n", alt, r.ImageURL)
	}

	if desc := r.PlainDescription(); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}
	return b.String()
}

// InventoryText formats the stock summary of a record.
func InventoryText(r catalog.Record) string {
	return fmt.Sprintf("%d in stock for %d variants", r.TotalInventory, r.TotalVariants)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (m *DetailModal) renderContent(width int) {
	md := DetailMarkdown(m.record)

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		m.viewport.SetContent(md)
		return
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		m.viewport.SetContent(md)
		return
	}

	m.viewport.SetContent(strings.TrimSpace(rendered))
}

// Record returns the product shown in the modal.
func (m *DetailModal) Record() catalog.Record {
	return m.record
}

// ScrollUp scrolls the viewport up.
func (m *DetailModal) ScrollUp() {
	m.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (m *DetailModal) ScrollDown() {
	m.viewport.ScrollDown(1)
}

// UpdateViewport forwards a message to the viewport.
func (m *DetailModal) UpdateViewport(msg any) {
	m.viewport, _ = m.viewport.Update(msg)
}

// SetStatus replaces the help line with a one-off status message.
func (m *DetailModal) SetStatus(status string) {
	m.status = status
}

// Overlay renders the modal centered over background.
func (m DetailModal) Overlay(background string, width, height int, helpText string) string {
	modalWidth := min(width-detailModalMargin, detailModalMaxWidth)
	modalHeight := min(height-detailModalMargin, detailModalMaxHeight)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100))
	}

	if m.status != "" {
		helpText = styles.TextSuccessStyle.Render(m.status)
	}

	divider := styles.TextSurfaceStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Product"+scrollInfo),
		divider,
		m.viewport.View(),
		styles.ModalHelpStyle.Render(helpText),
	)

	modal := styles.ModalStyle.
		Width(modalWidth).
		Height(modalHeight).
		Render(content)

	return Overlay(background, modal, width, height)
}
