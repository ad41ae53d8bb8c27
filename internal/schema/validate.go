package schema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lib/pq"
)

// Validate checks the relationship graph against the registered entities:
// every entity a relation names must exist, foreign keys must be columns of the
// table that owns them, each relation must be declared once with its inverse, and
// a many-to-many relation must come after the belongs-to relations of its join entity.
func Validate(entities []Entity, relations []Relation) error {
	registry := make(map[string]Entity, len(entities))
	for _, e := range entities {
		if _, ok := registry[e.TableName()]; ok {
			return fmt.Errorf("schema: entity %q registered twice", e.TableName())
		}
		registry[e.TableName()] = e
	}

	var errs []error
	seen := make(map[Relation]bool, len(relations))
	through := make(map[string]bool)

	for _, rel := range relations {
		if rel.Kind == ManyToMany {
			through[rel.Through] = true
		}
	}

	for i, rel := range relations {
		if seen[rel] {
			errs = append(errs, fmt.Errorf("schema: relation %q declared more than once", rel.Name))
			continue
		}
		seen[rel] = true

		if err := checkEntities(registry, rel); err != nil {
			errs = append(errs, err)
			continue
		}

		switch rel.Kind {
		case BelongsTo:
			errs = append(errs, checkColumn(registry, rel, rel.From, rel.ForeignKey))
		case HasMany:
			errs = append(errs, checkColumn(registry, rel, rel.To, rel.ForeignKey))
		case ManyToMany:
			errs = append(errs,
				checkColumn(registry, rel, rel.Through, rel.ForeignKey),
				checkColumn(registry, rel, rel.Through, rel.OtherKey),
			)

			declared := relations[:i]
			for _, parent := range []Relation{
				{Kind: BelongsTo, From: rel.Through, To: rel.From, ForeignKey: rel.ForeignKey},
				{Kind: BelongsTo, From: rel.Through, To: rel.To, ForeignKey: rel.OtherKey},
			} {
				if !slices.ContainsFunc(declared, sameEdge(parent)) {
					errs = append(errs, fmt.Errorf(
						"schema: relation %q: %s must declare belongs-to %s via %q before it",
						rel.Name, rel.Through, parent.To, parent.ForeignKey))
				}
			}
		default:
			errs = append(errs, fmt.Errorf("schema: relation %q has unknown kind %s", rel.Name, rel.Kind))
			continue
		}

		// the join entity's belongs-to edges are mirrored by the many-to-many pair
		if rel.Kind == BelongsTo && through[rel.From] {
			continue
		}

		if !slices.ContainsFunc(relations, sameEdge(inverse(rel))) {
			errs = append(errs, fmt.Errorf("schema: relation %q has no inverse %s declared", rel.Name, inverse(rel).Kind))
		}
	}

	return errors.Join(errs...)
}

func checkEntities(registry map[string]Entity, rel Relation) error {
	names := []string{rel.From, rel.To}
	if rel.Kind == ManyToMany {
		names = append(names, rel.Through)
	}

	for _, name := range names {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("schema: relation %q: entity %q is not registered", rel.Name, name)
		}
	}

	return nil
}

func checkColumn(registry map[string]Entity, rel Relation, table, column string) error {
	if column == "" {
		return fmt.Errorf("schema: relation %q: empty foreign key", rel.Name)
	}

	if !slices.Contains(registry[table].Columns(), column) {
		return fmt.Errorf("schema: relation %q: column %s does not exist", rel.Name, Qualify(table, column))
	}

	return nil
}

func inverse(rel Relation) Relation {
	switch rel.Kind {
	case BelongsTo:
		return Relation{Kind: HasMany, From: rel.To, To: rel.From, ForeignKey: rel.ForeignKey}
	case HasMany:
		return Relation{Kind: BelongsTo, From: rel.To, To: rel.From, ForeignKey: rel.ForeignKey}
	default:
		return Relation{
			Kind:       ManyToMany,
			From:       rel.To,
			To:         rel.From,
			Through:    rel.Through,
			ForeignKey: rel.OtherKey,
			OtherKey:   rel.ForeignKey,
		}
	}
}

// sameEdge compares relations ignoring their names.
func sameEdge(want Relation) func(Relation) bool {
	return func(r Relation) bool {
		r.Name, want.Name = "", ""
		return r == want
	}
}

func quote(table string) string {
	return pq.QuoteIdentifier(table)
}
