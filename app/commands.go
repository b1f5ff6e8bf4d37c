package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"quarkview/hal"
	"quarkview/quarkgl"
)

func newCommandRegistry() (*registry, error) {
	r := newRegistry()
	for _, cmd := range []command{
		{Name: "help", Aliases: []string{"?"}, Usage: "help [command]", Desc: "Show available commands.", Run: cmdHelp},
		{Name: "mode", Usage: "mode points|wireframe|filled", Desc: "Switch the render mode.", Run: cmdMode},
		{Name: "select", Aliases: []string{"sel"}, Usage: "select <n>", Desc: "Make object n (1-based) active.", Run: cmdSelect},
		{Name: "remove", Aliases: []string{"rm"}, Usage: "remove [n]", Desc: "Remove object n, or the active object.", Run: cmdRemove},
		{Name: "load", Usage: "load <file.obj>...", Desc: "Load OBJ meshes in the background and add them.", Run: cmdLoad},
		{Name: "cube", Usage: "cube", Desc: "Add the built-in cube.", Run: cmdCube},
		{Name: "texture", Aliases: []string{"tex"}, Usage: "texture <image>|none", Desc: "Set or clear the face pattern.", Run: cmdTexture},
		{Name: "pos", Usage: "pos x|y|z <value>", Desc: "Set a position axis of the active object.", Run: cmdPos},
		{Name: "rot", Usage: "rot x|y|z <degrees>", Desc: "Set a rotation axis of the active object.", Run: cmdRot},
		{Name: "scale", Usage: "scale x|y|z <value>", Desc: "Set a scale axis of the active object.", Run: cmdScale},
		{Name: "uscale", Usage: "uscale <value>", Desc: "Set the uniform scale of the active object.", Run: cmdUniformScale},
		{Name: "speed", Usage: "speed angle|move|scale <value>", Desc: "Set an animation speed (angle in rev/s).", Run: cmdSpeed},
		{Name: "anim", Usage: "anim rot|pos x|y|z on|off, anim scale on|off", Desc: "Toggle an animation.", Run: cmdAnim},
		{Name: "cam", Usage: "cam reset|speed <v>|pos <x> <y> <z>", Desc: "Control the camera.", Run: cmdCam},
		{Name: "status", Usage: "status", Desc: "Print the readouts.", Run: cmdStatus},
		{Name: "quit", Aliases: []string{"exit"}, Usage: "quit", Desc: "Close the viewer.", Run: cmdQuit},
	} {
		if err := r.register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func usage(cmd string) error {
	return fmt.Errorf("usage: %s", cmd)
}

func cmdHelp(v *Viewer, args []string) error {
	if len(args) == 0 {
		for _, name := range v.reg.names() {
			cmd, _ := v.reg.resolve(name)
			v.logf("console: %-8s %s", cmd.Name, cmd.Desc)
		}
		return nil
	}
	if len(args) != 1 {
		return usage("help [command]")
	}
	cmd, ok := v.reg.resolve(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	v.logf("console: usage: %s", cmd.Usage)
	v.logf("console: %s", cmd.Desc)
	if len(cmd.Aliases) > 0 {
		v.logf("console: aliases: %s", strings.Join(cmd.Aliases, ", "))
	}
	return nil
}

func cmdMode(v *Viewer, args []string) error {
	if len(args) != 1 {
		return usage("mode points|wireframe|filled")
	}
	m, err := quarkgl.ParseRenderMode(args[0])
	if err != nil {
		return err
	}
	v.scene.Mode = m
	return nil
}

func cmdSelect(v *Viewer, args []string) error {
	if len(args) != 1 {
		return usage("select <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	return v.scene.SetActive(n - 1)
}

func cmdRemove(v *Viewer, args []string) error {
	i := v.scene.ActiveIndex()
	switch len(args) {
	case 0:
		if i < 0 {
			return quarkgl.ErrNoActiveObject
		}
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		i = n - 1
	default:
		return usage("remove [n]")
	}
	return v.removeObject(i)
}

func cmdLoad(v *Viewer, args []string) error {
	if len(args) == 0 {
		return usage("load <file.obj>...")
	}
	v.loadMeshesAsync(args)
	return nil
}

func cmdCube(v *Viewer, args []string) error {
	if len(args) != 0 {
		return usage("cube")
	}
	return v.addCube()
}

func cmdTexture(v *Viewer, args []string) error {
	if len(args) != 1 {
		return usage("texture <image>|none")
	}
	if strings.EqualFold(args[0], "none") {
		v.scene.Texture.Store(nil)
		return nil
	}
	v.loadTextureAsync(args[0])
	return nil
}

func cmdPos(v *Viewer, args []string) error {
	a, f, err := axisValue(args, "pos x|y|z <value>")
	if err != nil {
		return err
	}
	return v.scene.SetPosition(a, f)
}

func cmdRot(v *Viewer, args []string) error {
	a, f, err := axisValue(args, "rot x|y|z <degrees>")
	if err != nil {
		return err
	}
	return v.scene.SetRotationDegrees(a, f)
}

func cmdScale(v *Viewer, args []string) error {
	a, f, err := axisValue(args, "scale x|y|z <value>")
	if err != nil {
		return err
	}
	return v.scene.SetScale(a, f)
}

func cmdUniformScale(v *Viewer, args []string) error {
	if len(args) != 1 {
		return usage("uscale <value>")
	}
	f, err := parseFloat(args[0])
	if err != nil {
		return err
	}
	return v.scene.SetUniformScale(f)
}

func cmdSpeed(v *Viewer, args []string) error {
	if len(args) != 2 {
		return usage("speed angle|move|scale <value>")
	}
	f, err := parseFloat(args[1])
	if err != nil {
		return err
	}
	switch strings.ToLower(args[0]) {
	case "angle", "rot":
		return v.scene.SetAngleSpeed(f)
	case "move", "pos":
		return v.scene.SetTranslateSpeed(f)
	case "scale":
		return v.scene.SetScaleSpeed(f)
	}
	return usage("speed angle|move|scale <value>")
}

func cmdAnim(v *Viewer, args []string) error {
	if len(args) == 2 && strings.EqualFold(args[0], "scale") {
		on, err := parseSwitch(args[1])
		if err != nil {
			return err
		}
		return v.scene.SetScaleAnimated(on)
	}
	if len(args) != 3 {
		return usage("anim rot|pos x|y|z on|off, anim scale on|off")
	}
	a, err := parseAxis(args[1])
	if err != nil {
		return err
	}
	on, err := parseSwitch(args[2])
	if err != nil {
		return err
	}
	switch strings.ToLower(args[0]) {
	case "rot":
		return v.scene.SetRotationAnimated(a, on)
	case "pos":
		return v.scene.SetPositionAnimated(a, on)
	}
	return usage("anim rot|pos x|y|z on|off, anim scale on|off")
}

func cmdCam(v *Viewer, args []string) error {
	if len(args) == 0 {
		return usage("cam reset|speed <v>|pos <x> <y> <z>")
	}
	switch strings.ToLower(args[0]) {
	case "reset":
		v.scene.Camera.Reset()
		return nil
	case "speed":
		if len(args) != 2 {
			return usage("cam speed <v>")
		}
		f, err := parseFloat(args[1])
		if err != nil {
			return err
		}
		if f <= 0 {
			return fmt.Errorf("cam speed: must be positive, got %v", f)
		}
		v.scene.Camera.BaseSpeed = f
		return nil
	case "pos":
		if len(args) != 4 {
			return usage("cam pos <x> <y> <z>")
		}
		var p mgl64.Vec3
		for i := range p {
			f, err := parseFloat(args[i+1])
			if err != nil {
				return err
			}
			p[i] = f
		}
		v.scene.Camera.Position = p
		return nil
	}
	return usage("cam reset|speed <v>|pos <x> <y> <z>")
}

func cmdStatus(v *Viewer, _ []string) error {
	snap := v.scene.Snapshot()
	v.logf("console: mode %s, %d objects", snap.Mode, snap.Objects)
	for _, line := range snap.Lines() {
		v.logf("console: %s", line)
	}
	return nil
}

func cmdQuit(*Viewer, []string) error { return hal.ErrQuit }

func axisValue(args []string, use string) (quarkgl.Axis, float64, error) {
	if len(args) != 2 {
		return 0, 0, usage(use)
	}
	a, err := parseAxis(args[0])
	if err != nil {
		return 0, 0, err
	}
	f, err := parseFloat(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, f, nil
}

func parseAxis(s string) (quarkgl.Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return quarkgl.AxisX, nil
	case "y":
		return quarkgl.AxisY, nil
	case "z":
		return quarkgl.AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", quarkgl.ErrInvalidAxis, s)
}

var errNotFinite = errors.New("value must be finite")

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s", errNotFinite, s)
	}
	return f, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}
