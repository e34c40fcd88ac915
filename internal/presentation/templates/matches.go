package templates

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

const (
	DefaultPrizeLabel = "Prize Pool"
	MaxMatchGroups    = 4
)

var matchFields = []struct {
	suffix   string
	selector string
}{
	{"Teams", ".match-teams"},
	{"Date", ".match-date"},
	{"Time", ".match-time"},
	{"Groups", ".match-groups"},
	{"Players", ".match-players"},
	{"Prize", ".prize-value"},
}

// MatchSynchronizer fills the repeating .match-card blocks from matchK* fields.
type MatchSynchronizer struct {
	maxGroups int
}

func NewMatchSynchronizer() *MatchSynchronizer {
	return &MatchSynchronizer{maxGroups: MaxMatchGroups}
}

// Sync updates the first K cards, K being the smaller of the card count and
// the group limit. A card whose group has no teams value is left as is. It
// returns the number of cards written.
func (m *MatchSynchronizer) Sync(doc *goquery.Document, data content.Section) int {
	cards := doc.Find(".match-card")
	if cards.Length() == 0 || len(data) == 0 {
		return 0
	}

	limit := min(cards.Length(), m.maxGroups)
	updated := 0
	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		k := i + 1
		if _, ok := data.StringValue(fmt.Sprintf("match%dTeams", k)); !ok {
			return true
		}

		for _, f := range matchFields {
			if v, ok := data.StringValue(fmt.Sprintf("match%d%s", k, f.suffix)); ok {
				card.Find(f.selector).First().SetText(v)
			}
		}
		label, ok := data.StringValue(fmt.Sprintf("match%dPrizeLabel", k))
		if !ok {
			label = DefaultPrizeLabel
		}
		card.Find(".prize-label").First().SetText(label)

		updated++
		return true
	})
	return updated
}
