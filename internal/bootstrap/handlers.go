// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/repoutils/repoutils/internal/runtime"
)

// callableShim imports module:function (argv[1]) and calls it with the
// remaining arguments as strings. A non-None result is printed.
const callableShim = `import importlib, sys
module_name, _, attr = sys.argv[1].partition(":")
target = importlib.import_module(module_name)
for part in attr.split("."):
    target = getattr(target, part)
result = target(*sys.argv[2:])
if result is not None:
    print(result)
`

// HandlerError reports a handler whose program failed.
type HandlerError struct {
	Command  string
	ExitCode int
	Stderr   string
	Cause    error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	var msg string
	if e.Cause != nil {
		msg = fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
	} else {
		msg = fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *HandlerError) Unwrap() error { return e.Cause }

// ScriptHandler runs script in the embedded shell with the arguments as
// positional parameters. Its stdout is the output.
func ScriptHandler(name, dir, script string) Handler {
	rt := runtime.NewVirtualRuntime()
	return func(ctx context.Context, args []string) (string, error) {
		ectx := runtime.NewExecutionContext(ctx)
		ectx.WorkDir = dir
		ectx.PositionalArgs = args
		return finish(name, rt.ExecuteCapture(ectx, script))
	}
}

// CallableHandler calls a Python module:function with string arguments.
// It runs in root with importDir prepended to PYTHONPATH. The printed return
// value is the output.
func CallableHandler(name, python, root, importDir, target string) Handler {
	rt := runtime.NewNativeRuntime()
	return func(ctx context.Context, args []string) (string, error) {
		ectx := runtime.NewExecutionContext(ctx)
		ectx.WorkDir = root
		ectx.ExtraEnv["PYTHONPATH"] = pythonPath(importDir)
		ectx.PositionalArgs = append([]string{"-c", callableShim, target}, args...)
		return finish(name, rt.ExecuteCapture(ectx, python))
	}
}

func pythonPath(dir string) string {
	if existing := os.Getenv("PYTHONPATH"); existing != "" {
		return dir + string(os.PathListSeparator) + existing
	}
	return dir
}

func finish(name string, result *runtime.Result) (string, error) {
	if result.Success() {
		return result.Output, nil
	}
	code := int(result.ExitCode)
	if code == 0 {
		code = 1
	}
	return result.Output, &HandlerError{
		Command:  name,
		ExitCode: code,
		Stderr:   result.ErrOutput,
		Cause:    result.Error,
	}
}
