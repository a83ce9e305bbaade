package render

import (
	"fmt"
	"time"

	"sodump/internal/classmodel"
	"sodump/internal/symtab"
)

// Metadata is the machine-readable export of one reconstruction pass.
type Metadata struct {
	Library      string              `json:"library"`
	Generated    time.Time           `json:"generated"`
	Classes      []ClassMeta         `json:"classes"`
	TotalMethods int                 `json:"total_methods"`
	Functions    int                 `json:"functions"`
	Variables    int                 `json:"variables"`
	Inheritance  map[string][]string `json:"inheritance,omitempty"`
}

// ClassMeta is one class in the metadata document.
type ClassMeta struct {
	Name        string       `json:"name"`
	Polymorphic bool         `json:"polymorphic"`
	Confidence  string       `json:"confidence"`
	Bases       []string     `json:"bases,omitempty"`
	MethodCount int          `json:"method_count"`
	Methods     []MethodMeta `json:"methods"`
}

// MethodMeta is one method in the metadata document.
type MethodMeta struct {
	Name       string `json:"name"`
	Params     string `json:"params"`
	Offset     string `json:"offset"`
	ReturnType string `json:"return_type,omitempty"`
	Category   string `json:"category"`
	Const      bool   `json:"const,omitempty"`
	Virtual    bool   `json:"virtual,omitempty"`
	Static     bool   `json:"static,omitempty"`
}

// BuildMetadata projects the assembled model into the export document.
// Ordering mirrors the model exactly, so the JSON is deterministic
// apart from the Generated timestamp.
func BuildMetadata(lib string, models []classmodel.ClassModel, funcs, vars int,
	inheritance map[string][]string, now time.Time) *Metadata {

	md := &Metadata{
		Library:     lib,
		Generated:   now,
		Functions:   funcs,
		Variables:   vars,
		Inheritance: inheritance,
	}
	for i := range models {
		m := &models[i]
		cm := ClassMeta{
			Name:        m.Name,
			Polymorphic: m.IsPolymorphic,
			Confidence:  m.Confidence.String(),
			Bases:       m.BaseClasses,
			MethodCount: m.MethodCount(),
		}
		appendMethods(&cm, m.Constructors, classmodel.Constructor)
		appendMethods(&cm, m.Destructors, classmodel.Destructor)
		appendMethods(&cm, m.StaticMethods, classmodel.StaticMethod)
		appendMethods(&cm, m.InstanceMethods, classmodel.InstanceMethod)

		md.Classes = append(md.Classes, cm)
		md.TotalMethods += cm.MethodCount
	}
	return md
}

func appendMethods(cm *ClassMeta, recs []symtab.MethodRecord, cat classmodel.Category) {
	for _, r := range recs {
		cm.Methods = append(cm.Methods, MethodMeta{
			Name:       r.MethodName,
			Params:     r.Params,
			Offset:     fmt.Sprintf("0x%x", r.Offset),
			ReturnType: r.ReturnType,
			Category:   cat.String(),
			Const:      r.IsConst,
			Virtual:    r.IsVirtual,
			Static:     r.IsStatic,
		})
	}
}
