// This file is part of iridium.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"iridium/asm"
	"iridium/vm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iridium",
		Short: "Assemble and run iridium register-machine images",
	}

	rootCmd.AddCommand(buildCmd(), runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <in.asm> <out.img>",
		Short: "Assemble a source file into a loadable image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "read %s", args[0])
			}
			image, err := asm.Assemble(string(src))
			if err != nil {
				return errors.Wrap(err, "assemble")
			}
			if err := vm.SaveImage(args[1], image); err != nil {
				return errors.Wrapf(err, "write %s", args[1])
			}
			fmt.Printf("wrote %s (%d bytes)\n", args[1], len(image))
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var heapCap int
	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load and execute an image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := vm.LoadImage(args[0])
			if err != nil {
				return errors.Wrapf(err, "load %s", args[0])
			}
			instance, err := vm.New(image, vm.WithStdout(os.Stdout), vm.WithHeapCapacity(heapCap))
			if err != nil {
				return errors.Wrap(err, "construct instance")
			}
			if err := instance.Run(); err != nil {
				return errors.Wrap(err, "run")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&heapCap, "heap", 1<<16, "initial heap capacity in bytes")
	return cmd
}
