package schema

import "fmt"

type Kind int

const (
	BelongsTo Kind = iota + 1
	HasMany
	ManyToMany
)

func (k Kind) String() string {
	switch k {
	case BelongsTo:
		return "belongs-to"
	case HasMany:
		return "has-many"
	case ManyToMany:
		return "many-to-many"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Relation is one direction of a relationship between two entities.
//
// BelongsTo: ForeignKey lives on From.
// HasMany: ForeignKey lives on To.
// ManyToMany: ForeignKey (pointing at From) and OtherKey (pointing at To) live on Through.
type Relation struct {
	Name       string
	Kind       Kind
	From       string
	To         string
	ForeignKey string
	Through    string
	OtherKey   string
}

var (
	ArtistPictures = Relation{
		Name:       "Artist.Pictures",
		Kind:       HasMany,
		From:       Artists.Table,
		To:         Pictures.Table,
		ForeignKey: Pictures.ArtistID,
	}

	PictureArtist = Relation{
		Name:       "Picture.Artist",
		Kind:       BelongsTo,
		From:       Pictures.Table,
		To:         Artists.Table,
		ForeignKey: Pictures.ArtistID,
	}

	ExhibitionPictureExhibition = Relation{
		Name:       "ExhibitionPicture.Exhibition",
		Kind:       BelongsTo,
		From:       ExhibitionPictures.Table,
		To:         Exhibitions.Table,
		ForeignKey: ExhibitionPictures.ExhibitionID,
	}

	ExhibitionPicturePicture = Relation{
		Name:       "ExhibitionPicture.Picture",
		Kind:       BelongsTo,
		From:       ExhibitionPictures.Table,
		To:         Pictures.Table,
		ForeignKey: ExhibitionPictures.PictureID,
	}

	ExhibitionPicturesList = Relation{
		Name:       "Exhibition.Pictures",
		Kind:       ManyToMany,
		From:       Exhibitions.Table,
		To:         Pictures.Table,
		Through:    ExhibitionPictures.Table,
		ForeignKey: ExhibitionPictures.ExhibitionID,
		OtherKey:   ExhibitionPictures.PictureID,
	}

	PictureExhibitions = Relation{
		Name:       "Picture.Exhibitions",
		Kind:       ManyToMany,
		From:       Pictures.Table,
		To:         Exhibitions.Table,
		Through:    ExhibitionPictures.Table,
		ForeignKey: ExhibitionPictures.PictureID,
		OtherKey:   ExhibitionPictures.ExhibitionID,
	}
)

// Relations is the relationship graph in declaration order. The join entity's
// belongs-to relations come before the many-to-many relations that go through it.
var Relations = []Relation{
	ArtistPictures,
	PictureArtist,
	ExhibitionPictureExhibition,
	ExhibitionPicturePicture,
	ExhibitionPicturesList,
	PictureExhibitions,
}

// JoinOn renders the table and ON condition for a BelongsTo or HasMany relation,
// ready for squirrel's Join/LeftJoin.
func JoinOn(rel Relation) string {
	switch rel.Kind {
	case BelongsTo:
		return fmt.Sprintf("%s ON %s = %s",
			quote(rel.To), Qualify(rel.To, "id"), Qualify(rel.From, rel.ForeignKey))
	case HasMany:
		return fmt.Sprintf("%s ON %s = %s",
			quote(rel.To), Qualify(rel.To, rel.ForeignKey), Qualify(rel.From, "id"))
	default:
		panic(fmt.Sprintf("schema: JoinOn called with %s relation %q", rel.Kind, rel.Name))
	}
}

// JoinThrough renders the two joins of a ManyToMany relation: From -> Through, Through -> To.
func JoinThrough(rel Relation) (through, target string) {
	if rel.Kind != ManyToMany {
		panic(fmt.Sprintf("schema: JoinThrough called with %s relation %q", rel.Kind, rel.Name))
	}

	through = fmt.Sprintf("%s ON %s = %s",
		quote(rel.Through), Qualify(rel.Through, rel.ForeignKey), Qualify(rel.From, "id"))
	target = fmt.Sprintf("%s ON %s = %s",
		quote(rel.To), Qualify(rel.To, "id"), Qualify(rel.Through, rel.OtherKey))

	return through, target
}
