// Package modelio parses a YAML model description into a pkg/model.Model,
// the wire format cmd/server's POST /models endpoint and cmd/artidyn accept
// (SPEC_FULL.md's HTTP control plane and CLI runner).
package modelio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bxrne/artidyn/pkg/massprops"
	"github.com/bxrne/artidyn/pkg/model"
	"github.com/bxrne/artidyn/pkg/motor"
	"github.com/bxrne/artidyn/pkg/pose"
	"github.com/bxrne/artidyn/pkg/vecmath"
)

type vec3Doc struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v vec3Doc) toV3() vecmath.V3 { return vecmath.V3{X: v.X, Y: v.Y, Z: v.Z} }

type massDoc struct {
	Shape     string  `yaml:"shape"`
	Mass      float64 `yaml:"mass"`
	Radius    float64 `yaml:"radius"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Thickness float64 `yaml:"thickness"`
}

type motorDoc struct {
	Type    string  `yaml:"type"`
	Value   float64 `yaml:"value"`
	K       float64 `yaml:"k"`
	C       float64 `yaml:"c"`
	Preload float64 `yaml:"preload"`
}

type jointDoc struct {
	Kind        string   `yaml:"kind"`
	Parent      int      `yaml:"parent"`
	Offset      vec3Doc  `yaml:"offset"`
	Axis        vec3Doc  `yaml:"axis"`
	Pitch       float64  `yaml:"pitch"`
	Mass        massDoc  `yaml:"mass"`
	Motor       motorDoc `yaml:"motor"`
	InitialQ    float64  `yaml:"initial_q"`
	InitialQdot float64  `yaml:"initial_qdot"`
}

type modelDoc struct {
	UnitSystem string     `yaml:"unit_system"`
	Gravity    vec3Doc    `yaml:"gravity"`
	Joints     []jointDoc `yaml:"joints"`
}

// Parse builds a Model from its YAML description. Joints must appear
// parent-before-child; a joint names its parent by index into the document's
// joints list, or -1 to attach to ground.
func Parse(data []byte) (*model.Model, error) {
	var doc modelDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("modelio: failed to parse model yaml: %w", err)
	}

	b := model.NewWorld(doc.UnitSystem, doc.Gravity.toV3())
	handles := make([]model.Handle, len(doc.Joints))

	for i, jd := range doc.Joints {
		parent := b.Root()
		if jd.Parent >= 0 {
			if jd.Parent >= i {
				return nil, fmt.Errorf("modelio: joint %d names a forward or self parent %d", i, jd.Parent)
			}
			parent = handles[jd.Parent]
		}

		offset := pose.Pose{Position: jd.Offset.toV3(), Orientation: vecmath.IdentityQ}
		axis := jd.Axis.toV3()

		var h model.Handle
		switch jd.Kind {
		case "revolute":
			h = b.AddRevolute(parent, offset, axis)
		case "prismatic":
			h = b.AddPrismatic(parent, offset, axis)
		case "screw":
			h = b.AddScrew(parent, offset, axis, jd.Pitch)
		default:
			return nil, fmt.Errorf("modelio: joint %d has unknown kind %q", i, jd.Kind)
		}

		mp, err := massPropsFromDoc(doc.UnitSystem, jd.Mass)
		if err != nil {
			return nil, fmt.Errorf("modelio: joint %d: %w", i, err)
		}
		b.SetMassProperties(h, mp)

		mtr, err := motorFromDoc(jd.Motor)
		if err != nil {
			return nil, fmt.Errorf("modelio: joint %d: %w", i, err)
		}
		b.SetMotor(h, mtr)

		b.SetInitialConditions(h, jd.InitialQ, jd.InitialQdot)
		handles[i] = h
	}

	return b.Build()
}

func massPropsFromDoc(units string, md massDoc) (massprops.MassProps, error) {
	switch md.Shape {
	case "sphere":
		return massprops.FromSphere(units, md.Mass, md.Radius), nil
	case "box":
		return massprops.FromBox(units, md.Mass, md.Width, md.Height, md.Thickness), nil
	case "cylinder":
		return massprops.FromCylinder(units, md.Mass, md.Radius, md.Height), nil
	default:
		return massprops.MassProps{}, fmt.Errorf("unknown mass shape %q", md.Shape)
	}
}

func motorFromDoc(md motorDoc) (motor.Motor, error) {
	switch md.Type {
	case "", "constant":
		return motor.Constant(md.Value), nil
	case "spring":
		return motor.Spring(md.K, md.C, md.Preload), nil
	default:
		return nil, fmt.Errorf("unknown motor type %q (only constant and spring are expressible in a model document)", md.Type)
	}
}
