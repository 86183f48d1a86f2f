package common

// Number is the set of component types a Vec2 may hold.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Vec2 is an X and Y value.
type Vec2[T Number] struct {
	X T `json:"x"`
	Y T `json:"y"`
}

// V2 returns a Vec2 holding x and y.
func V2[T Number](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

// Mul returns the component-wise product of v and o.
func (v Vec2[T]) Mul(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X * o.X, Y: v.Y * o.Y}
}

// Float converts v to a float64 pair.
func (v Vec2[T]) Float() Vec2[float64] {
	return Vec2[float64]{X: float64(v.X), Y: float64(v.Y)}
}
