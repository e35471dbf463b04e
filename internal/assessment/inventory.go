package assessment

import (
	"fmt"

	"github.com/spigell/career-compass/internal/riasec"
)

// Item is one inventory statement rated from 1 (dislike) to 5 (enjoy).
type Item struct {
	Dimension riasec.Dimension
	Statement string
}

// Inventory is the short interest inventory used by the interactive wizard.
var Inventory = []Item{
	{riasec.Realistic, "Building, repairing or working with tools and machines"},
	{riasec.Realistic, "Working outdoors or with your hands"},
	{riasec.Investigative, "Analysing data to understand how something works"},
	{riasec.Investigative, "Researching a question until you find the answer"},
	{riasec.Artistic, "Designing, writing or creating something original"},
	{riasec.Artistic, "Working without a fixed set of rules"},
	{riasec.Social, "Teaching, coaching or helping people"},
	{riasec.Social, "Working closely with others in a team"},
	{riasec.Enterprising, "Persuading people or leading a project"},
	{riasec.Enterprising, "Starting something new and taking risks"},
	{riasec.Conventional, "Organising information and keeping records accurate"},
	{riasec.Conventional, "Following clear procedures to get things done"},
}

// ScoreInventory turns per-item ratings (indexed like Inventory) into 0-100
// scores per dimension.
func ScoreInventory(ratings []int) (riasec.Scores, error) {
	if len(ratings) != len(Inventory) {
		return nil, fmt.Errorf("expected %d ratings, got %d", len(Inventory), len(ratings))
	}

	sums := make(map[riasec.Dimension]int, 6)
	counts := make(map[riasec.Dimension]int, 6)
	for i, rating := range ratings {
		if rating < MinRating || rating > MaxRating {
			return nil, fmt.Errorf("%w: item %d rated %d", ErrInvalidRating, i+1, rating)
		}
		d := Inventory[i].Dimension
		sums[d] += rating - MinRating
		counts[d]++
	}

	scores := make(riasec.Scores, 6)
	for _, d := range riasec.Dimensions() {
		if counts[d] == 0 {
			scores[d] = 0
			continue
		}
		scores[d] = float64(sums[d]) / float64(counts[d]*(MaxRating-MinRating)) * 100
	}
	return scores, nil
}
