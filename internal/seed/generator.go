package seed

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// Constants for random generation.
const (
	randomFloatDivisor = 1000000
	minSeedAge         = 6
	ageSpread          = 12
	sprintBaseSeconds  = 10.0
	sprintSpread       = 8.0
	throwSpread        = 60.0
	scoreSetMax        = 10.0
)

var genders = []string{"F", "M"}

var activityTemplates = []activityRequest{
	{Name: "Sprint 60m", Description: "Short distance sprint, lower time wins", EvaluationType: "NUMERIC_LOW"},
	{Name: "Ball Throw", Description: "Distance throw in meters", EvaluationType: "NUMERIC_HIGH"},
	{Name: "Rope Climb", Description: "Completed the climb", EvaluationType: "BOOLEAN"},
	{Name: "Floor Routine", Description: "Judged routine score", EvaluationType: "SCORE_SET"},
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateEvent builds a full event definition with randomized rosters.
func generateEvent(cfg *Config) eventRequest {
	req := eventRequest{Name: cfg.EventName}

	for g := 0; g < cfg.Groups; g++ {
		group := groupRequest{
			Name:       fmt.Sprintf("Group %c", 'A'+g),
			Identifier: fmt.Sprintf("grp-%02d", g+1),
		}
		for p := 0; p < cfg.GroupSize; p++ {
			gender := genders[randomInt(len(genders))]
			age := minSeedAge + randomInt(ageSpread)
			group.Participants = append(group.Participants, participantRequest{
				DisplayName: fmt.Sprintf("Athlete %c%d", 'A'+g, p+1),
				ExternalID:  uuid.New().String(),
				Gender:      &gender,
				Age:         &age,
			})
		}
		req.Groups = append(req.Groups, group)
	}

	if cfg.AgeCategories {
		req.AgeCategories = []ageCategoryRequest{
			{Name: "U10", MinAge: 0, MaxAge: 9},
			{Name: "U14", MinAge: 10, MaxAge: 13},
			{Name: "Open", MinAge: 14, MaxAge: 99},
		}
	}

	for a := 0; a < cfg.Activities; a++ {
		req.Activities = append(req.Activities, activityTemplates[a%len(activityTemplates)])
	}
	return req
}

// generateValue produces a plausible raw value for the evaluation type.
func generateValue(evaluationType string) string {
	switch evaluationType {
	case "NUMERIC_LOW":
		return strconv.FormatFloat(sprintBaseSeconds+getRandomFloat()*sprintSpread, 'f', 2, 64)
	case "NUMERIC_HIGH":
		return strconv.FormatFloat(getRandomFloat()*throwSpread, 'f', 2, 64)
	case "BOOLEAN":
		if randomInt(2) == 0 {
			return "0"
		}
		return "1"
	default:
		return strconv.FormatFloat(getRandomFloat()*scoreSetMax, 'f', 1, 64)
	}
}
