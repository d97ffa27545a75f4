package component

// Pointer is the cursor in world units, written by the input layer each
// frame.
type Pointer struct {
	X       float64
	Y       float64
	Inside  bool
	Clicked bool
}

var PointerComponent = NewComponent[Pointer]()
