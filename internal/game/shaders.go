package game

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"fireworksgl/internal/cli"
)

// Geometry vertex shader: one instanced circle per particle. Positions are
// pixels with the origin at the bottom left.
const geometryVertSrc = `#version 410 core

layout(location = 0) in vec3 aBase;      // unit circle (x, y, edge)
layout(location = 1) in vec3 aTranslate;
layout(location = 2) in vec4 aColour;
layout(location = 3) in float aRadius;
layout(location = 4) in float aLife;
layout(location = 5) in int aKind;

layout(std140) uniform Dimensions {
    ivec4 uDims;
};

out vec4 vColour;
out float vEdge;
flat out int vKind;

void main() {
    vec2 pos = aTranslate.xy + aBase.xy * aRadius;
    vec2 ndc = pos / vec2(uDims.xy) * 2.0 - 1.0;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vColour = vec4(aColour.rgb, aColour.a * clamp(aLife, 0.0, 1.0));
    vEdge = aBase.z;
    vKind = aKind;
}
` + "\x00"

// Geometry fragment shader: haze is a soft puff, everything else a disc
// with a feathered rim.
const geometryFragSrc = `#version 410 core

in vec4 vColour;
in float vEdge;
flat in int vKind;
out vec4 FragColor;

void main() {
    float shape = vKind == 0 ? 1.0 - vEdge * vEdge : 1.0 - smoothstep(0.6, 1.0, vEdge);
    FragColor = vec4(vColour.rgb, vColour.a * shape);
}
` + "\x00"

// Point vertex shader: bright cores drawn over the circles.
const pointVertSrc = `#version 410 core

layout(location = 0) in vec3 aTranslate;
layout(location = 1) in int aKind;

layout(std140) uniform Dimensions {
    ivec4 uDims;
};

uniform float uPointSize;

flat out int vKind;

void main() {
    vec2 ndc = aTranslate.xy / vec2(uDims.xy) * 2.0 - 1.0;
    gl_Position = vec4(ndc, 0.0, 1.0);
    gl_PointSize = uPointSize;
    vKind = aKind;
}
` + "\x00"

const pointFragSrc = `#version 410 core

flat in int vKind;
out vec4 FragColor;

void main() {
    if (vKind == 0) {
        discard;
    }
    FragColor = vec4(1.0, 0.95, 0.85, 1.0);
}
` + "\x00"

// Fullscreen quad vertex shader shared by the post-processing passes.
const quadVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;

out vec2 vUV;

void main() {
    vUV = aUV;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

// Separable 9-tap gaussian.
const blurFragSrc = `#version 410 core

uniform sampler2D uImage;
uniform bool horizontal;

in vec2 vUV;
out vec4 FragColor;

const float weight[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);

void main() {
    vec2 texel = 1.0 / vec2(textureSize(uImage, 0));
    vec3 result = texture(uImage, vUV).rgb * weight[0];
    for (int i = 1; i < 5; ++i) {
        vec2 off = horizontal ? vec2(texel.x * float(i), 0.0) : vec2(0.0, texel.y * float(i));
        result += texture(uImage, vUV + off).rgb * weight[i];
        result += texture(uImage, vUV - off).rgb * weight[i];
    }
    FragColor = vec4(result, 1.0);
}
` + "\x00"

// Bloom composite: sharp scene plus its blur.
const bloomFragSrc = `#version 410 core

uniform sampler2D texture0_screen;
uniform sampler2D texture1_blur;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec3 scene = texture(texture0_screen, vUV).rgb;
    vec3 glow = texture(texture1_blur, vUV).rgb;
    FragColor = vec4(scene + glow, 1.0);
}
` + "\x00"

// Screen shader: exposure tonemap and gamma for the default framebuffer.
const screenFragSrc = `#version 410 core

uniform sampler2D uImage;
uniform float uExposure;
uniform float uGamma;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec3 hdr = texture(uImage, vUV).rgb;
    vec3 mapped = vec3(1.0) - exp(-hdr * uExposure);
    FragColor = vec4(pow(mapped, vec3(1.0 / uGamma)), 1.0);
}
` + "\x00"

var shaderTypes = map[cli.ShaderStage]uint32{
	cli.StageVertex:   gl.VERTEX_SHADER,
	cli.StageFragment: gl.FRAGMENT_SHADER,
}

// infoLog reads a shader or program log through the matching GL getters.
func infoLog(object uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var logLen int32
	getiv(object, gl.INFO_LOG_LENGTH, &logLen)
	buf := strings.Repeat("\x00", int(logLen+1))
	getLog(object, logLen, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

// compileShader compiles one stage of the named program.
func compileShader(program string, stage cli.ShaderStage, source string) (uint32, error) {
	shader := gl.CreateShader(shaderTypes[stage])
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, &cli.ShaderError{Program: program, Stage: stage, Log: log}
	}
	return shader, nil
}

// linkProgram builds a program, reporting failures as *cli.ShaderError.
func linkProgram(name, vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(name, cli.StageVertex, vertSrc)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(name, cli.StageFragment, fragSrc)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, &cli.ShaderError{Program: name, Stage: cli.StageLink, Log: log}
	}
	return program, nil
}
