package glcontext

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/hluengas/color-shredder/internal/engine/gfx"
	"github.com/hluengas/color-shredder/internal/logger"
)

// CreateProgram compiles vertex and fragment shaders and links them into a program.
func (c *Context) CreateProgram(vertexSrc, fragmentSrc string) (gfx.Program, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("program: %w", gfx.ErrResourceCreation)
	}
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLen, nil, buf)
		})
		gl.DeleteProgram(program)
		return 0, &gfx.ProgramLinkError{Log: log}
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return gfx.Program(program), nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		return 0, fmt.Errorf("%s shader: %w", stage, gfx.ErrResourceCreation)
	}
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLen, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, &gfx.ShaderCompileError{Stage: stage, Log: log}
	}

	return shader, nil
}

func infoLog(logLen int32, read func(*uint8)) string {
	if logLen <= 0 {
		return "no diagnostic available"
	}
	log := make([]byte, logLen)
	read(&log[0])
	// Drop the trailing NUL
	if log[len(log)-1] == 0 {
		log = log[:len(log)-1]
	}
	return string(log)
}
