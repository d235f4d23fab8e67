package portal_test

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/bsp-portals/pkg/portal"
)

func round(v mgl32.Vec3) mgl32.Vec3 {
	for i, f := range v {
		r := float32(math.Round(float64(f)*100) / 100)
		if r == 0 {
			r = 0 // drop negative zero
		}

		v[i] = r
	}

	return v
}

func ExampleMirror() {
	up := mgl32.Vec3{0, 1, 0}

	entry, err := portal.LookFrame(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, up)
	if err != nil {
		panic(err)
	}

	exit, err := portal.LookFrame(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{1, 0, 0}, up)
	if err != nil {
		panic(err)
	}

	// two metres in front of the entry, looking into it
	observer := portal.PoseAt(mgl32.Vec3{0, 1.7, 2})

	mirrored, err := portal.Mirror(observer, entry, exit)
	if err != nil {
		panic(err)
	}

	fmt.Println("position:", round(mirrored.Position))
	fmt.Println("facing:", round(mirrored.Forward()))
	// Output:
	// position: [8 1.7 0]
	// facing: [1 0 0]
}
