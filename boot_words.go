package weft

// @generated from boot.go

//go:generate go run scripts/gen_boot_words.go -- boot.go boot_words.go

var bootWordNames = []string{
	"ahead",
	"<back",
	"if",
	"endif",
	"else",
	"begin",
	"until",
	"again",
	"repeat",
}
