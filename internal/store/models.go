package store

import "gorm.io/datatypes"

// Document is one ingested TEI resource's persisted identity.
type Document struct {
	ID         uint `gorm:"primaryKey"`
	Identifier string `gorm:"uniqueIndex"`
	FilePath   string

	Trees []Tree `gorm:"foreignKey:DocumentID"`
}

// Tree is one named reference tree persisted for a Document, carrying
// its enumerated units and path index as JSON. Name holds the "null"
// sentinel for the document's default/unnamed tree.
type Tree struct {
	ID         uint `gorm:"primaryKey"`
	DocumentID uint `gorm:"index"`
	Name       string

	Units     datatypes.JSON
	PathIndex datatypes.JSON
}
