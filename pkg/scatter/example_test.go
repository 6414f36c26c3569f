package scatter_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/typescatter/pkg/scatter"
)

func ExampleRenderer_Layout() {
	r := scatter.New(scatter.WithSeed(2024))

	c := r.Layout("scattered words on a page", 800)

	fmt.Println("Words:", len(c.Words))
	fmt.Println("First word:", c.Words[0].Text)
	fmt.Println("Tall enough:", c.MinHeight >= 48)
	// Output:
	// Words: 5
	// First word: scattered
	// Tall enough: true
}

func ExampleRenderer_Render() {
	r := scatter.New(scatter.WithSeed(1))
	surface := scatter.NewMemorySurface(600)

	r.Render(context.Background(), surface, "hello world")
	fmt.Println("Mounted:", surface.Children())

	r.Render(context.Background(), surface, "   ")
	fmt.Println("After blank input:", surface.Children())
	// Output:
	// Mounted: 2
	// After blank input: 0
}
