package plane

import "github.com/san-kum/zplane/internal/dynamo"

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragSession exists only between pointer down and pointer up.
type DragSession struct {
	AnchorX, AnchorY float64
	AnchorCenter     complex128
}

// Interaction resolves raw pointer events into pans of a Viewport and
// remembers the cursor for zoom anchoring and probing.
type Interaction struct {
	vp      *Viewport
	session *DragSession

	cursorX, cursorY float64
	hasCursor        bool
}

func NewInteraction(vp *Viewport) *Interaction {
	return &Interaction{vp: vp}
}

func (in *Interaction) State() State {
	if in.session != nil {
		return Dragging
	}
	return Idle
}

// Session returns the active drag session, if any.
func (in *Interaction) Session() (DragSession, bool) {
	if in.session == nil {
		return DragSession{}, false
	}
	return *in.session, true
}

// Cursor returns the last known pointer position.
func (in *Interaction) Cursor() (x, y float64, ok bool) {
	return in.cursorX, in.cursorY, in.hasCursor
}

func (in *Interaction) track(x, y float64) {
	in.cursorX, in.cursorY, in.hasCursor = x, y, true
}

// PointerDown starts a drag anchored at (x, y). A down while already
// dragging re-anchors, which recovers from a lost pointer up.
func (in *Interaction) PointerDown(x, y float64) {
	in.track(x, y)
	in.session = &DragSession{AnchorX: x, AnchorY: y, AnchorCenter: in.vp.Center}
}

// PointerMove updates the cursor and, while dragging, recomputes the
// centre from the fixed anchor.
func (in *Interaction) PointerMove(x, y float64) {
	in.track(x, y)
	if in.session == nil {
		return
	}
	s := in.session
	in.vp.Center = in.vp.panned(s.AnchorCenter, x-s.AnchorX, y-s.AnchorY)
}

// PointerUp applies a final move and ends the drag. Without a drag it does
// nothing, not even update the cursor.
func (in *Interaction) PointerUp(x, y float64) {
	if in.session == nil {
		return
	}
	in.PointerMove(x, y)
	dynamo.Logger().Debug("drag finished", "center", in.vp.Center)
	in.session = nil
}

// Cancel drops an active drag without moving the view.
func (in *Interaction) Cancel() {
	in.session = nil
}

// Zoom rescales about the last known cursor, or the screen centre when no
// pointer has been seen. An active drag is re-anchored so the next move
// does not jump.
func (in *Interaction) Zoom(factor float64) error {
	var err error
	if in.hasCursor {
		err = in.vp.ZoomAbout(factor, in.cursorX, in.cursorY)
	} else {
		err = in.vp.Zoom(factor)
	}
	if err == nil && in.session != nil {
		in.session = &DragSession{AnchorX: in.cursorX, AnchorY: in.cursorY, AnchorCenter: in.vp.Center}
	}
	return err
}

// Viewport returns the viewport driven by this interaction.
func (in *Interaction) Viewport() *Viewport { return in.vp }
