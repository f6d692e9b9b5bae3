package domain

import (
	"strings"
	"time"
)

// Category is a named bucket for records inside one mode namespace.
type Category struct {
	ID        string
	UserID    string
	Mode      Mode
	Name      string
	Kind      Direction
	CreatedAt time.Time
}

// Validate validates category fields.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return MissingField("name")
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := ParseDirection(string(c.Kind)); err != nil {
		return err
	}
	return nil
}

// DefaultCategory is a seed entry.
type DefaultCategory struct {
	Name string
	Kind Direction
}

var personalDefaults = []DefaultCategory{
	{"飲食", DirectionExpense},
	{"住家", DirectionExpense},
	{"手機", DirectionExpense},
	{"交通", DirectionExpense},
	{"學習", DirectionExpense},
	{"娛樂", DirectionExpense},
	{"購物", DirectionExpense},
	{"送禮", DirectionExpense},
	{"醫療", DirectionExpense},
	{"保險", DirectionExpense},
	{"其它", DirectionExpense},
	{"獎金", DirectionIncome},
	{"工讀", DirectionIncome},
	{"補助", DirectionIncome},
	{"生活費", DirectionIncome},
	{"利息", DirectionIncome},
	{"中獎", DirectionIncome},
}

var businessDefaults = []DefaultCategory{
	{"進貨成本", DirectionExpense},
	{"人事費用", DirectionExpense},
	{"廣告行銷", DirectionExpense},
	{"租金水電", DirectionExpense},
	{"稅金費用", DirectionExpense},
	{"其他支出", DirectionExpense},
	{"銷售收入", DirectionIncome},
	{"其他收入", DirectionIncome},
}

// DefaultCategories returns a copy of the seed list for mode.
func DefaultCategories(mode Mode) []DefaultCategory {
	var src []DefaultCategory
	switch mode {
	case ModePersonal:
		src = personalDefaults
	case ModeBusiness:
		src = businessDefaults
	}
	out := make([]DefaultCategory, len(src))
	copy(out, src)
	return out
}
