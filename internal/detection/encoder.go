package detection

// Fix is the wire-level description of a target relative to the frame
// center.
type Fix struct {
	// Direction is the horizontal offset of the target center from the frame
	// center. Positive means right.
	Direction int32 `json:"direction"`

	// Distance is the vertical offset of the target center from the frame
	// center. Positive means above.
	Distance int32 `json:"distance"`

	// Valid is set when a target was found. It is not transmitted: (0, 0)
	// on the wire means either a centered target or no target.
	Valid bool `json:"valid"`
}

// Encode converts the selected target into a Fix for a frame of the given
// size, using integer arithmetic:
//
//	direction = (x + w/2) - width/2
//	distance  = height/2 - (y + h/2)
//
// With ok == false the neutral Fix (0, 0) is returned.
func Encode(t Target, ok bool, width, height int) Fix {
	if !ok {
		return Fix{}
	}
	c := t.Box.Center()
	return Fix{
		Direction: int32(c.X - width/2),
		Distance:  int32(height/2 - c.Y),
		Valid:     true,
	}
}
