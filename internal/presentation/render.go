package presentation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"github.com/davidpdrsn/git-branch-picker/internal/catalog"
)

const (
	// TimestampLayout is the absolute timestamp printed in the trailing column.
	TimestampLayout = "2006-01-02 15:04:05"

	renderedLineTemplateConstant = "%s%s | %s%s (%s)"
	lineSeparatorConstant        = "\n"
	paddingCharacterConstant     = " "
)

// RenderedLine is the display projection of one branch record.
type RenderedLine struct {
	Record catalog.BranchRecord
	Text   string
}

// RenderedBlock holds the rendered lines in catalog order and their column widths.
type RenderedBlock struct {
	Lines     []RenderedLine
	NameWidth int
	AgeWidth  int
}

// Text joins the rendered lines with newlines; this is the candidate set handed to a picker.
func (block RenderedBlock) Text() string {
	return strings.Join(block.Texts(), lineSeparatorConstant)
}

// Texts returns each rendered line in catalog order.
func (block RenderedBlock) Texts() []string {
	return lo.Map(block.Lines, func(line RenderedLine, _ int) string { return line.Text })
}

// Render lays out the catalog as "name | age (timestamp)" with the name and age columns padded
// to their widest entry. Widths are terminal display widths.
func Render(branchCatalog catalog.Catalog, now time.Time) RenderedBlock {
	ages := lo.Map(branchCatalog, func(record catalog.BranchRecord, _ int) string { return Humanize(now, record.CommittedAt) })

	nameWidth := lo.Max(lo.Map(branchCatalog, func(record catalog.BranchRecord, _ int) int { return runewidth.StringWidth(record.Name) }))
	ageWidth := lo.Max(lo.Map(ages, func(age string, _ int) int { return runewidth.StringWidth(age) }))

	renderedLines := make([]RenderedLine, 0, len(branchCatalog))
	for recordIndex, record := range branchCatalog {
		renderedLines = append(renderedLines, RenderedLine{
			Record: record,
			Text: fmt.Sprintf(
				renderedLineTemplateConstant,
				record.Name,
				padding(nameWidth, record.Name),
				ages[recordIndex],
				padding(ageWidth, ages[recordIndex]),
				record.CommittedAt.Format(TimestampLayout),
			),
		})
	}

	return RenderedBlock{Lines: renderedLines, NameWidth: nameWidth, AgeWidth: ageWidth}
}

// padding returns the spaces needed to widen value to width, or none if value is already wider.
func padding(width int, value string) string {
	return strings.Repeat(paddingCharacterConstant, max(width-runewidth.StringWidth(value), 0))
}
