package game

import "github.com/google/uuid"

// Generator produces the random content a session consumes: contracts at
// game start and each quarter boundary, and the hireable employee pool.
type Generator struct {
	rng RNG
}

func NewGenerator(rng RNG) *Generator {
	return &Generator{rng: rng}
}

// Difficulty is drawn 50/30/20 easy/medium/hard.
var difficultyWeights = []int{50, 30, 20}

var difficultyOrder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

var contractTitles = map[Difficulty][]string{
	DifficultyEasy: {
		"Simple Data Entry Project",
		"Basic Website Update",
		"Customer Survey Analysis",
		"Social Media Content Creation",
	},
	DifficultyMedium: {
		"E-commerce Platform Development",
		"Marketing Campaign Strategy",
		"Database Migration Project",
		"Mobile App Prototype",
	},
	DifficultyHard: {
		"Enterprise Software Solution",
		"AI Implementation Project",
		"Complete System Overhaul",
		"International Market Expansion",
	},
}

var contractDescriptions = map[Difficulty]string{
	DifficultyEasy:   "A straightforward project that requires basic skills and minimal complexity.",
	DifficultyMedium: "A moderately complex project requiring coordination and specialized knowledge.",
	DifficultyHard:   "A challenging project demanding expertise, innovation, and careful execution.",
}

var firstNames = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Avery", "Cameron",
	"Quinn", "Sage", "River", "Rowan", "Emery", "Dakota", "Phoenix", "Skyler",
	"Blake", "Parker", "Drew", "Kai", "Reese", "Charlie", "Hayden", "Remy",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
}

// InitialContractCount draws how many contracts a fresh game opens with.
func (g *Generator) InitialContractCount() (int, error) {
	return g.rng.IntBetween(2, 3)
}

// QuarterlyContractCount draws how many contracts a quarter boundary adds.
func (g *Generator) QuarterlyContractCount() (int, error) {
	return g.rng.IntBetween(3, 5)
}

// Contracts generates count new contracts for the given quarter, all
// Available with zero progress.
func (g *Generator) Contracts(sessionID string, quarter, count int) ([]Contract, error) {
	out := make([]Contract, 0, count)
	for i := 0; i < count; i++ {
		c, err := g.contract(sessionID, quarter)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (g *Generator) contract(sessionID string, quarter int) (Contract, error) {
	idx, err := g.rng.Pick(difficultyWeights)
	if err != nil {
		return Contract{}, err
	}
	difficulty := difficultyOrder[idx]

	work, err := g.workRequired(difficulty)
	if err != nil {
		return Contract{}, err
	}
	deadline, err := g.deadlineWeeks(difficulty)
	if err != nil {
		return Contract{}, err
	}
	points, err := g.stakeholderPoints(difficulty)
	if err != nil {
		return Contract{}, err
	}
	titles := contractTitles[difficulty]
	titleIdx, err := g.rng.IntBetween(0, len(titles)-1)
	if err != nil {
		return Contract{}, err
	}

	return Contract{
		ID:                  uuid.NewString(),
		SessionID:           sessionID,
		Title:               titles[titleIdx],
		Description:         contractDescriptions[difficulty],
		Difficulty:          difficulty,
		TotalWorkRequired:   work,
		CurrentProgress:     0,
		DeadlineWeeks:       deadline,
		WeeksRemaining:      deadline,
		BaseReward:          baseReward(difficulty, quarter),
		StakeholderPoints:   points,
		BonusMultiplier:     DefaultBonusMultiplier,
		Status:              ContractAvailable,
		AccuracyRequirement: DefaultAccuracyRequirement,
		CurrentAccuracy:     100,
	}, nil
}

func (g *Generator) workRequired(d Difficulty) (int, error) {
	switch d {
	case DifficultyEasy:
		return g.rng.IntBetween(50, 99)
	case DifficultyMedium:
		return g.rng.IntBetween(100, 199)
	default:
		return g.rng.IntBetween(200, 349)
	}
}

func (g *Generator) deadlineWeeks(d Difficulty) (int, error) {
	switch d {
	case DifficultyEasy:
		return g.rng.IntBetween(2, 3)
	case DifficultyMedium:
		return g.rng.IntBetween(3, 5)
	default:
		return g.rng.IntBetween(5, 8)
	}
}

func (g *Generator) stakeholderPoints(d Difficulty) (int, error) {
	switch d {
	case DifficultyEasy:
		return g.rng.IntBetween(10, 24)
	case DifficultyMedium:
		return g.rng.IntBetween(25, 49)
	default:
		return g.rng.IntBetween(50, 99)
	}
}

// Rewards rise with the quarter so later runs stay worth taking.
func baseReward(d Difficulty, quarter int) int64 {
	var base int64
	switch d {
	case DifficultyEasy:
		base = 5000
	case DifficultyMedium:
		base = 10000
	default:
		base = 18000
	}
	return base + int64(quarter)*1000
}

// EmployeePool generates n unhired templates for the session.
func (g *Generator) EmployeePool(sessionID string, n int) ([]Employee, error) {
	out := make([]Employee, 0, n)
	for i := 0; i < n; i++ {
		e, err := g.Employee(sessionID)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Employee generates one unhired analyst template. Stats scale with a
// random starting level.
func (g *Generator) Employee(sessionID string) (Employee, error) {
	level, err := g.rng.IntBetween(1, 3)
	if err != nil {
		return Employee{}, err
	}
	speed, err := g.rng.IntBetween(15, 29)
	if err != nil {
		return Employee{}, err
	}
	speedBonus, err := g.rng.IntBetween(3, 7)
	if err != nil {
		return Employee{}, err
	}
	accuracy, err := g.rng.IntBetween(70, 89)
	if err != nil {
		return Employee{}, err
	}
	accuracyBonus, err := g.rng.IntBetween(2, 5)
	if err != nil {
		return Employee{}, err
	}
	salary, err := g.rng.Int64Between(600, 900)
	if err != nil {
		return Employee{}, err
	}
	salaryBonus, err := g.rng.Int64Between(100, 300)
	if err != nil {
		return Employee{}, err
	}
	first, err := g.rng.IntBetween(0, len(firstNames)-1)
	if err != nil {
		return Employee{}, err
	}
	last, err := g.rng.IntBetween(0, len(lastNames)-1)
	if err != nil {
		return Employee{}, err
	}

	acc := accuracy + level*accuracyBonus
	if acc > 100 {
		acc = 100
	}
	return Employee{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Name:      firstNames[first] + " " + lastNames[last],
		Type:      EmployeeAnalyst,
		Level:     level,
		Speed:     speed + level*speedBonus,
		Accuracy:  acc,
		Salary:    salary + int64(level)*salaryBonus,
		Morale:    100,
		Active:    false,
	}, nil
}
