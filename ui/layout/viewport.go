package layout

// Viewport is the host window the grid lives in. It reports its size in
// pixels and notifies subscribers when it is resized.
//
// Viewport is not safe for concurrent use; it belongs to the UI goroutine.
type Viewport struct {
	width, height float64

	nextID    int
	listeners map[int]func(width, height float64)
	order     []int
}

// NewViewport creates a viewport with the given pixel size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		width:     width,
		height:    height,
		listeners: make(map[int]func(width, height float64)),
	}
}

// Size returns the current width and height in pixels.
func (v *Viewport) Size() (float64, float64) {
	return v.width, v.height
}

// Width returns the current width in pixels.
func (v *Viewport) Width() float64 {
	return v.width
}

// Resize updates the size and synchronously notifies every subscriber once, in
// subscription order.
func (v *Viewport) Resize(width, height float64) {
	v.width = width
	v.height = height

	// Copy so a listener may unsubscribe while being notified.
	ids := append([]int(nil), v.order...)
	for _, id := range ids {
		if fn, ok := v.listeners[id]; ok {
			fn(width, height)
		}
	}
}

// Subscribe registers fn for resize notifications. The returned function
// removes the registration and is safe to call more than once.
func (v *Viewport) Subscribe(fn func(width, height float64)) func() {
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.order = append(v.order, id)

	return func() {
		if _, ok := v.listeners[id]; !ok {
			return
		}
		delete(v.listeners, id)
		for i, o := range v.order {
			if o == id {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
	}
}

// Listeners returns the number of active subscriptions.
func (v *Viewport) Listeners() int {
	return len(v.listeners)
}
