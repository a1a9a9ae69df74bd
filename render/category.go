package render

//go:generate go tool go-enum --names

// Category of rendered token, selects its color.
// ENUM(Bracket, ElementName, AttributeName, Quote, Text)
type Category int
