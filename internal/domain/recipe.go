// Package domain defines the core types and interfaces for the recipe client.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is one catalog entry as served by the Recipe Service.
type Recipe struct {
	ID          int // assigned by the service
	Title       string
	Description string
	Ingredients []string
	Steps       []string // execution order
}

// Draft is a recipe that has not been submitted yet. The service assigns
// the ID on creation.
type Draft struct {
	Title       string
	Description string
	Ingredients []string
	Steps       []string
}

