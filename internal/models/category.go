package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. The (owner, name, type)
// triple is unique.
type Category struct {
	Base
	OwnerID  string       `gorm:"not null;index;uniqueIndex:idx_categories_owner_name_type" json:"owner_id"`
	Name     string       `gorm:"not null;uniqueIndex:idx_categories_owner_name_type" json:"name"`
	Type     CategoryType `gorm:"not null;uniqueIndex:idx_categories_owner_name_type" json:"type"`
	IsCustom bool         `gorm:"default:false" json:"is_custom"`
	Color    string       `json:"color"`
	Icon     string       `json:"icon"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}

// DefaultCategory describes one seedable default category.
type DefaultCategory struct {
	Name  string
	Type  CategoryType
	Color string
	Icon  string
}

// DefaultCategories is the seed set created for new owners. The expense
// set includes every name the budget analyzer classifies as a need.
var DefaultCategories = []DefaultCategory{
	{Name: "salary", Type: CategoryTypeIncome, Color: "#10B981", Icon: "💰"},
	{Name: "freelance", Type: CategoryTypeIncome, Color: "#34D399", Icon: "💻"},
	{Name: "investment", Type: CategoryTypeIncome, Color: "#6EE7B7", Icon: "📈"},
	{Name: "bonus", Type: CategoryTypeIncome, Color: "#A7F3D0", Icon: "🎁"},
	{Name: "other", Type: CategoryTypeIncome, Color: "#D1FAE5", Icon: "💵"},
	{Name: "food", Type: CategoryTypeExpense, Color: "#F59E0B", Icon: "🍕"},
	{Name: "transportation", Type: CategoryTypeExpense, Color: "#3B82F6", Icon: "🚗"},
	{Name: "entertainment", Type: CategoryTypeExpense, Color: "#8B5CF6", Icon: "🎬"},
	{Name: "shopping", Type: CategoryTypeExpense, Color: "#EC4899", Icon: "🛍️"},
	{Name: "bills", Type: CategoryTypeExpense, Color: "#EF4444", Icon: "🧾"},
	{Name: "healthcare", Type: CategoryTypeExpense, Color: "#14B8A6", Icon: "🏥"},
	{Name: "rent", Type: CategoryTypeExpense, Color: "#F97316", Icon: "🏠"},
	{Name: "utilities", Type: CategoryTypeExpense, Color: "#64748B", Icon: "💡"},
	{Name: "other", Type: CategoryTypeExpense, Color: "#9CA3AF", Icon: "📦"},
}
