package models

type SymptomType struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_symptom_types_user"`
	Name      string `gorm:"not null"`
	Icon      string `gorm:"not null"`
	Color     string `gorm:"not null"`
	IsBuiltin bool   `gorm:"not null;default:false"`
}

type BuiltinSymptom struct {
	Name  string
	Icon  string
	Color string
}

// DefaultBuiltinSymptoms is the catalog every user starts with, in display
// order.
func DefaultBuiltinSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Name: "Cramps", Icon: "🩸", Color: "#FF4444"},
		{Name: "Bloating", Icon: "🎈", Color: "#3498DB"},
		{Name: "Fatigue", Icon: "😴", Color: "#95A5A6"},
		{Name: "Mood swings", Icon: "🎭", Color: "#9B59B6"},
		{Name: "Headache", Icon: "🤕", Color: "#FFA500"},
		{Name: "Acne", Icon: "🔴", Color: "#E74C3C"},
		{Name: "Nausea", Icon: "🤢", Color: "#7CB342"},
		{Name: "Breast tenderness", Icon: "💔", Color: "#E91E63"},
		{Name: "Back pain", Icon: "🦴", Color: "#8E6E53"},
		{Name: "Anxiety", Icon: "😰", Color: "#5C6BC0"},
		{Name: "Irritability", Icon: "😤", Color: "#FF7043"},
		{Name: "Sleep issues", Icon: "🌙", Color: "#3F51B5"},
		{Name: "Appetite changes", Icon: "🍫", Color: "#A1887F"},
		{Name: "Spotting", Icon: "🩹", Color: "#C55A7A"},
	}
}
