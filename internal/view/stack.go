package view

// entry is one navigation history frame. The list frame is the
// permanent base and is never popped.
type entry struct {
	screen  Screen
	venueID string
}

type navStack struct {
	entries []entry
}

func newNavStack() navStack {
	return navStack{entries: []entry{{screen: ScreenList}}}
}

func (n *navStack) push(screen Screen, venueID string) {
	n.entries = append(n.entries, entry{screen: screen, venueID: venueID})
}

// pop removes the top frame and returns the frame now on top. The base
// list frame is never removed.
func (n *navStack) pop() entry {
	if len(n.entries) > 1 {
		n.entries = n.entries[:len(n.entries)-1]
	}
	return n.top()
}

// popTwo collapses the top two frames in a single operation, so an
// intermediate frame is never observable. Used when a submitted form
// should also dismiss the surface that opened it.
func (n *navStack) popTwo() entry {
	for i := 0; i < 2 && len(n.entries) > 1; i++ {
		n.entries = n.entries[:len(n.entries)-1]
	}
	return n.top()
}

func (n *navStack) top() entry {
	return n.entries[len(n.entries)-1]
}

func (n *navStack) depth() int {
	return len(n.entries)
}
