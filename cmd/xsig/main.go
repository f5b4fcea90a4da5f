package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/offload/argument"
	"github.com/wippyai/offload/callspec"
	"github.com/wippyai/offload/device"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to kernel module wasm file")
		funcName    = flag.String("func", "", "Kernel to call (overrides the call description)")
		callFile    = flag.String("call", "", "YAML call description")
		argSpecs    = flag.String("args", "", "Compact argument specs (i32:in=41;i32:out)")
		list        = flag.Bool("list", false, "List kernels and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log diagnostics to stderr")
	)
	flag.Parse()

	if *wasmFile == "" && *callFile == "" && *argSpecs == "" {
		fmt.Fprintln(os.Stderr, "Usage: xsig -args <spec;spec> | -call <file.yaml>  (print the signature)")
		fmt.Fprintln(os.Stderr, "       xsig -wasm <file.wasm> -func name -args <spec;spec>")
		fmt.Fprintln(os.Stderr, "       xsig -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       xsig -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		argument.SetLogger(logger)
		device.SetLogger(logger)
	}

	if *interactive {
		if *wasmFile == "" {
			fmt.Fprintln(os.Stderr, "Error: -i requires -wasm")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile, *argSpecs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *funcName, *callFile, *argSpecs, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadCall(funcName, callFile, argSpecs string) (*callspec.Call, error) {
	var (
		call *callspec.Call
		err  error
	)
	if callFile != "" {
		call, err = callspec.Load(callFile)
	} else {
		call, err = callspec.ParseArgs(funcName, argSpecs)
	}
	if err != nil {
		return nil, err
	}
	if funcName != "" {
		call.Kernel = funcName
	}
	return call, nil
}

func run(wasmFile, funcName, callFile, argSpecs string, listOnly bool) error {
	ctx := context.Background()
	styled := term.IsTerminal(int(os.Stdout.Fd()))

	var dev *device.Device
	if wasmFile != "" {
		data, err := os.ReadFile(wasmFile)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		dev, err = device.New(ctx, data, nil)
		if err != nil {
			return fmt.Errorf("load kernels: %w", err)
		}
		defer dev.Close(ctx)

		fmt.Printf("Module: %s\n", wasmFile)
		fmt.Printf("Memory: %d bytes\n", dev.Memory().Size())
		fmt.Printf("\nKernels:\n")
		for _, name := range dev.Kernels() {
			fmt.Printf("  %s(signature) -> status\n", name)
		}
		if listOnly {
			return nil
		}
	}

	call, err := loadCall(funcName, callFile, argSpecs)
	if err != nil {
		return err
	}
	binding, err := call.Bind()
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	fmt.Printf("\nSignature (%d arguments):\n", binding.Len())
	fmt.Println(renderTable(binding, styled))

	if dev == nil {
		return nil
	}
	if call.Kernel == "" {
		fmt.Printf("\nNo kernel specified. Use -func to specify a kernel to call.\n")
		return nil
	}

	fmt.Printf("\nCalling %s...\n", call.Kernel)
	if err := dev.Call(ctx, call.Kernel, &binding.Signature); err != nil {
		return fmt.Errorf("call %s: %w", call.Kernel, err)
	}

	fmt.Printf("\nResult:\n")
	fmt.Println(renderTable(binding, styled))
	return nil
}
