package ctdf

import "time"

type Station struct {
	PrimaryIdentifier string `groups:"basic,detailed"`
	PrimaryName       string `groups:"basic,detailed"`

	CreationDateTime     time.Time `groups:"detailed"`
	ModificationDateTime time.Time `groups:"detailed"`
}
