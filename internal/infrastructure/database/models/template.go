package models

import "time"

// DocumentTemplate is administered outside the core and read-only
// here.
type DocumentTemplate struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"type:text;not null"`
	Classification string    `json:"classification" gorm:"type:text;not null"`
	Markup         string    `json:"markup" gorm:"type:text"`
	CDate          time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// TagDefinition maps one template token to an entity field.
type TagDefinition struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Token      string `json:"token" gorm:"type:text;not null;uniqueIndex"`
	EntityKind string `json:"entityKind" gorm:"type:text;not null"`
	FieldPath  string `json:"fieldPath" gorm:"type:text;not null"`
	Active     bool   `json:"active" gorm:"not null;default:true"`
}
