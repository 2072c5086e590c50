package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Name is the prefab name an entity was built from.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
