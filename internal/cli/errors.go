package cli

import (
	"errors"
	"fmt"
)

// ExitCode is the process status reported to the screensaver host.
type ExitCode int

const (
	ExitOK                ExitCode = 0
	ExitInit              ExitCode = 100
	ExitArgCount          ExitCode = 101
	ExitWindow            ExitCode = 102
	ExitUnknownArg        ExitCode = 103
	ExitGLLoader          ExitCode = 104
	ExitCompileVertex     ExitCode = 105
	ExitCompileFragment   ExitCode = 106
	ExitShaderLink        ExitCode = 107
	ExitPrepareRenderBuf  ExitCode = 200
	ExitPrepareEffectBufs ExitCode = 201
)

var (
	ErrArgCount      = errors.New("wrong number of arguments")
	ErrUnknownArg    = errors.New("unrecognised argument")
	ErrConfig        = errors.New("configuration")
	ErrWindow        = errors.New("window creation failed")
	ErrGLLoader      = errors.New("OpenGL loader failed")
	ErrPrepareRender = errors.New("render buffer preparation failed")
	ErrPrepareEffect = errors.New("effect buffer preparation failed")
)

// ShaderStage identifies where shader building failed.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageLink
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}

// ShaderError carries the driver's info log for a failed compile or link.
type ShaderError struct {
	Program string
	Stage   ShaderStage
	Log     string
}

func (e *ShaderError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("%s program: link: %s", e.Program, e.Log)
	}
	return fmt.Sprintf("%s program: compile %s shader: %s", e.Program, e.Stage, e.Log)
}

// ExitCodeFor maps an error returned by the screensaver to its exit code.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitOK
	}
	var se *ShaderError
	if errors.As(err, &se) {
		switch se.Stage {
		case StageVertex:
			return ExitCompileVertex
		case StageFragment:
			return ExitCompileFragment
		default:
			return ExitShaderLink
		}
	}
	switch {
	case errors.Is(err, ErrArgCount):
		return ExitArgCount
	case errors.Is(err, ErrUnknownArg):
		return ExitUnknownArg
	case errors.Is(err, ErrWindow):
		return ExitWindow
	case errors.Is(err, ErrGLLoader):
		return ExitGLLoader
	case errors.Is(err, ErrPrepareRender):
		return ExitPrepareRenderBuf
	case errors.Is(err, ErrPrepareEffect):
		return ExitPrepareEffectBufs
	default:
		return ExitInit
	}
}
