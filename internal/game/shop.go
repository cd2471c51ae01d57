package game

import (
	"errors"
	"fmt"

	"github.com/astralisgame/astralis-backend/internal/types"
)

var (
	ErrUnknownItem             = errors.New("invalid item")
	ErrInsufficientCredits     = errors.New("insufficient credits")
	ErrNotOwned                = errors.New("item not owned")
	ErrUnknownSkill            = errors.New("invalid skill")
	ErrInsufficientSkillPoints = errors.New("not enough skill points")
	ErrLevelTooLow             = errors.New("level too low")
	ErrAlreadyUnlocked         = errors.New("skill already unlocked")
)

type ShopItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
	Type string `json:"type"`
}

type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	ReqLevel    int    `json:"reqLevel"`
	Description string `json:"description"`
}

var ShopItems = map[string]ShopItem{
	"neon_green_bubble":   {ID: "neon_green_bubble", Name: "Neon Green Bubble", Cost: 500, Type: "cosmetic"},
	"cyber_blue_bubble":   {ID: "cyber_blue_bubble", Name: "Cyber Blue Bubble", Cost: 500, Type: "cosmetic"},
	"plasma_pink_bubble":  {ID: "plasma_pink_bubble", Name: "Plasma Pink Bubble", Cost: 500, Type: "cosmetic"},
	"void_purple_bubble":  {ID: "void_purple_bubble", Name: "Void Purple Bubble", Cost: 500, Type: "cosmetic"},
	"solar_orange_bubble": {ID: "solar_orange_bubble", Name: "Solar Orange Bubble", Cost: 500, Type: "cosmetic"},
	"streak_freeze":       {ID: "streak_freeze", Name: "Streak Freeze", Cost: 200, Type: "consumable"},
	"matrix_theme":        {ID: "matrix_theme", Name: "Matrix Theme", Cost: 1000, Type: "cosmetic"},
}

var SkillTree = map[string]Skill{
	SkillNeuralEfficiency: {ID: SkillNeuralEfficiency, Name: "Neural Efficiency", Cost: 1, ReqLevel: 3, Description: "+10% XP Gain"},
	SkillFocusMaster:      {ID: SkillFocusMaster, Name: "Focus Master", Cost: 1, ReqLevel: 5, Description: "-20% Focus Drain"},
	SkillHackerInstinct:   {ID: SkillHackerInstinct, Name: "Hacker's Instinct", Cost: 2, ReqLevel: 10, Description: "Cheaper Oracle Hints"},
}

// Purchase deducts the item cost and adds it to the inventory. Re-purchase
// of an owned item is not blocked here; the UI checks ownership first.
func Purchase(p *types.Player, itemID string) (ShopItem, error) {
	item, ok := ShopItems[itemID]
	if !ok {
		return ShopItem{}, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if p.Credits < item.Cost {
		return ShopItem{}, ErrInsufficientCredits
	}
	p.Credits -= item.Cost
	p.Inventory = append(p.Inventory, itemID)
	return item, nil
}

// Equip sets the single equipped theme slot to an owned item.
func Equip(p *types.Player, itemID string) error {
	if !p.OwnsItem(itemID) {
		return ErrNotOwned
	}
	p.EquippedTheme = itemID
	return nil
}

// UnlockSkill spends skill points on a level-gated skill. Unlocked skills
// passively change engine behavior via unlocked-skill membership.
func UnlockSkill(p *types.Player, skillID string) (Skill, error) {
	skill, ok := SkillTree[skillID]
	if !ok {
		return Skill{}, fmt.Errorf("%w: %s", ErrUnknownSkill, skillID)
	}
	if p.HasSkill(skillID) {
		return Skill{}, ErrAlreadyUnlocked
	}
	if p.SkillPoints < skill.Cost {
		return Skill{}, ErrInsufficientSkillPoints
	}
	if p.Level < skill.ReqLevel {
		return Skill{}, ErrLevelTooLow
	}
	p.SkillPoints -= skill.Cost
	p.UnlockedSkills = append(p.UnlockedSkills, skillID)
	return skill, nil
}
