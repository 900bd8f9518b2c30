package component

type Name struct {
	Value string
}

var NameComponent = NewComponent[*Name]()
