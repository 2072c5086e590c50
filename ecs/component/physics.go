package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to its chipmunk body. It is filled in by the
// physics system; only the character has a non-static body.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
