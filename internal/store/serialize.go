package store

import (
	"encoding/json"

	"github.com/dtscore/dts/internal/core"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultTreeSentinel is the on-disk name for a document's default,
// unnamed reference tree: Go's zero-value "" can't itself be stored as
// a lookup key alongside named trees, so it round-trips through this
// literal instead.
const defaultTreeSentinel = "null"

func treeRowName(name string) string {
	if name == "" {
		return defaultTreeSentinel
	}
	return name
}

type pathEntry struct {
	Ref  string `json:"ref"`
	Path []int  `json:"path"`
}

func exportPaths(idx *core.PathIndex) []pathEntry {
	if idx == nil {
		return nil
	}
	out := make([]pathEntry, 0, idx.Len())
	for _, k := range idx.Keys() {
		p, _ := idx.Path(k)
		out = append(out, pathEntry{Ref: k, Path: p})
	}
	return out
}

// SaveTree upserts tree's enumerated units and path index under
// documentIdentifier, creating the Document row if this is its first
// tree.
func SaveTree(db *gorm.DB, documentIdentifier, filePath string, tree *core.CitationTree) error {
	var doc Document
	if err := db.Where(Document{Identifier: documentIdentifier}).
		FirstOrCreate(&doc, Document{Identifier: documentIdentifier, FilePath: filePath}).Error; err != nil {
		return err
	}

	unitsJSON, err := json.Marshal(tree.Units)
	if err != nil {
		return err
	}
	pathsJSON, err := json.Marshal(exportPaths(tree.PathIndex))
	if err != nil {
		return err
	}

	name := treeRowName(tree.Name)
	var existing Tree
	err = db.Where(Tree{DocumentID: doc.ID, Name: name}).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		return db.Create(&Tree{
			DocumentID: doc.ID,
			Name:       name,
			Units:      datatypes.JSON(unitsJSON),
			PathIndex:  datatypes.JSON(pathsJSON),
		}).Error
	case err != nil:
		return err
	default:
		existing.Units = datatypes.JSON(unitsJSON)
		existing.PathIndex = datatypes.JSON(pathsJSON)
		return db.Save(&existing).Error
	}
}

// LoadTree retrieves the named tree (empty name for the document's
// default tree) previously saved for documentIdentifier.
func LoadTree(db *gorm.DB, documentIdentifier, name string) (*core.CitationTree, error) {
	var doc Document
	if err := db.Where(Document{Identifier: documentIdentifier}).First(&doc).Error; err != nil {
		return nil, err
	}

	var row Tree
	if err := db.Where(Tree{DocumentID: doc.ID, Name: treeRowName(name)}).First(&row).Error; err != nil {
		return nil, err
	}

	var units []*core.CitableUnit
	if err := json.Unmarshal(row.Units, &units); err != nil {
		return nil, err
	}
	var entries []pathEntry
	if err := json.Unmarshal(row.PathIndex, &entries); err != nil {
		return nil, err
	}

	idx := core.NewPathIndex()
	for _, e := range entries {
		idx.Append(e.Ref, e.Path)
	}

	return &core.CitationTree{Name: name, Units: units, PathIndex: idx}, nil
}
