package report

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type NodeKind string

const (
	NodeText        NodeKind = "text"
	NodeList        NodeKind = "list"
	NodeItem        NodeKind = "item"
	NodePointDetail NodeKind = "point_detail"
	NodeGroup       NodeKind = "group"
	NodeSection     NodeKind = "section"
)

// Weight is the visual prominence of a section heading.
type Weight string

const (
	WeightPrimary   Weight = "primary"
	WeightSecondary Weight = "secondary"
)

// Node is one element of the rendered report.
//
// Text holds the leaf text, the inline text of a list item, the heading of a
// section or the label of a point/detail block. Body is only set on
// point/detail blocks.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Body     string   `json:"body,omitempty"`
	Weight   Weight   `json:"weight,omitempty"`
	Depth    int      `json:"depth,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Render turns a decoded document into a node tree. Opaque values render to
// nil.
func Render(v models.Value) (*Node, error) {
	return render(v, 1, 0)
}

func render(v models.Value, depth, nesting int) (*Node, error) {
	if nesting > MaxDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d levels", ErrMalformedDocument, MaxDepth)
	}

	switch v.Kind {
	case models.KindScalar:
		return &Node{Kind: NodeText, Text: v.Scalar}, nil

	case models.KindSequence:
		list := &Node{Kind: NodeList, Depth: depth}
		for _, item := range v.Items {
			switch item.Kind {
			case models.KindScalar:
				list.Children = append(list.Children, &Node{Kind: NodeItem, Text: item.Scalar})
			case models.KindOpaque:
			default:
				child, err := render(item, depth, nesting+1)
				if err != nil {
					return nil, err
				}
				list.Children = append(list.Children, &Node{Kind: NodeItem, Children: []*Node{child}})
			}
		}
		return list, nil

	case models.KindPointDetail:
		return &Node{Kind: NodePointDetail, Text: v.Point, Body: v.Details}, nil

	case models.KindGroup:
		group := &Node{Kind: NodeGroup, Depth: depth}
		for _, entry := range v.Entries {
			section := &Node{
				Kind:   NodeSection,
				Text:   Label(entry.Key),
				Weight: weightFor(depth),
				Depth:  depth,
			}
			child, err := render(entry.Value, depth+1, nesting+1)
			if err != nil {
				return nil, err
			}
			if child != nil {
				section.Children = []*Node{child}
			}
			group.Children = append(group.Children, section)
		}
		return group, nil

	default:
		return nil, nil
	}
}

// Label turns a document key into a heading: underscores become spaces and
// the result is upper-cased.
func Label(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

func weightFor(depth int) Weight {
	if depth == 1 {
		return WeightPrimary
	}
	return WeightSecondary
}
