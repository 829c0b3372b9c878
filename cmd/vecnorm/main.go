// Package main provides the VecNorm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/vecnorm-ml/vecnorm/autodiff"
	"github.com/vecnorm-ml/vecnorm/backend/cpu"
	"github.com/vecnorm-ml/vecnorm/norm"
	"github.com/vecnorm-ml/vecnorm/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("VecNorm %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("VecNorm - Differentiable L2 Normalization for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Normalize a sample vector and print its gradient")
}

// demo normalizes a single 2-element row and backpropagates through it.
func demo() error {
	backend := autodiff.New(cpu.New())

	x, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{1, 2}, backend)
	if err != nil {
		return err
	}

	y, err := norm.Normalize(x)
	if err != nil {
		return err
	}
	fmt.Printf("x = %v\n", x.Data())
	fmt.Printf("y = x / (||x|| + eps) = %v\n", y.Data())

	loss := y.Sum()
	grads := backend.Backward(loss.Raw())
	fmt.Printf("d sum(y) / dx = %v\n", tensor.New[float32](grads[x.Raw()], backend).Data())

	return nil
}
