package entity

type Tour struct {
	BaseNoDelete
	Name       string  `db:"name"`
	Slug       string  `db:"slug"`
	Summary    string  `db:"summary"`
	ImageCover string  `db:"image_cover"`
	Price      float64 `db:"price"`
}
