package component

// InteractTarget reacts to the interact action.
type InteractTarget interface {
	Interact()
}

// ShootTarget reacts to being shot.
type ShootTarget interface {
	Shoot(damage int)
}

type Interactable struct {
	Target InteractTarget
}

var InteractableComponent = NewComponent[Interactable]()

type Shootable struct {
	Target ShootTarget
}

var ShootableComponent = NewComponent[Shootable]()
