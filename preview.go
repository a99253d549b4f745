//go:build !nopreview

package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"carbounds/internal/boundaries"
)

// previewScale enlarges the sprite so a few pixels of hitbox are visible.
const previewScale = 3

var (
	vertexShaderSource = `
		#version 410
		in vec2 vp;
		uniform mat4 mvp;
		void main() {
			gl_Position = mvp * vec4(vp, 0.0, 1.0);
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410
		uniform vec3 colour;
		out vec4 frag_colour;
		void main() {
			frag_colour = vec4(colour, 1.0);
		}
	` + "\x00"
)

// runPreview shows the generated frames one at a time. Left and right arrow
// keys step through the frames, escape closes the window.
func runPreview(res *result) error {
	if len(res.frames) == 0 {
		return nil
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	width := int(res.size.W) * previewScale
	height := int(res.size.H) * previewScale
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	gl.UseProgram(program)

	mvpUniform := gl.GetUniformLocation(program, gl.Str("mvp\x00"))
	colourUniform := gl.GetUniformLocation(program, gl.Str("colour\x00"))

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	vertAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.ClearColor(0.1, 0.1, 0.1, 1.0)

	// image pixels, Y down
	mvp := mgl32.Ortho2D(0, float32(res.size.W), float32(res.size.H), 0)
	gl.UniformMatrix4fv(mvpUniform, 1, false, &mvp[0])

	n := len(res.frames)
	frame := 0
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		switch key {
		case glfw.KeyRight:
			frame = (frame + 1) % n
		case glfw.KeyLeft:
			frame = (frame - 1 + n) % n
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})

	shown := -1
	for !window.ShouldClose() {
		if frame != shown {
			shown = frame
			window.SetTitle(fmt.Sprintf("%s | %s | frame %d/%d (%.2f°)",
				title, res.session.Car, frame+1, n, boundaries.FrameAngle(frame, n)))
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		for i, set := range res.frames[frame] {
			drawOutline(outline(set.Points), setColour(i), colourUniform)
		}
		c := res.centre
		drawOutline([]boundaries.Point{{X: c.X - 1, Y: c.Y}, {X: c.X + 1, Y: c.Y}}, centreColour, colourUniform)

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// drawOutline uploads points into the bound buffer and draws them as a line
// loop.
func drawOutline(points []boundaries.Point, col color.Color, colourUniform int32) {
	if len(points) == 0 {
		return
	}
	vertices := make([]float32, 0, len(points)*2)
	for _, p := range points {
		vertices = append(vertices, float32(p.X), float32(p.Y))
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)

	r, g, b, _ := col.RGBA()
	gl.Uniform3f(colourUniform, float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff)
	gl.DrawArrays(gl.LINE_LOOP, 0, int32(len(points)))
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}

	return shader, nil
}
