package scene

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/taigrr/raylight/pkg/math3d"
)

// Extras keys written on exported nodes and materials.
const (
	extraShape    = "raylight:shape"
	extraMaterial = "raylight:material"
	extraDiffuse  = "raylight:diffuse"
	shapeSphere   = "sphere"
)

// GLTFLoader turns a glTF/GLB document into a Scene.
//
// Spheres come from two kinds of node: nodes exported by raylight (tagged in
// their extras) and nodes that reference a mesh, which are taken to be unit
// spheres scaled by the node's X scale. Point lights come from the
// KHR_lights_punctual extension. Node rotation is ignored.
type GLTFLoader struct {
	// MeshNodesAsSpheres treats mesh nodes as unit spheres.
	MeshNodesAsSpheres bool

	// IntensityScale multiplies every imported light intensity.
	IntensityScale float64
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		MeshNodesAsSpheres: true,
		IntensityScale:     1,
	}
}

// LoadGLTF loads a .gltf or .glb scene file with default options.
func LoadGLTF(path string) (*Scene, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens path and converts it.
func (l *GLTFLoader) Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	s, err := l.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// FromDocument converts an in-memory document. The result is validated.
func (l *GLTFLoader) FromDocument(doc *gltf.Document) (*Scene, error) {
	s := New()

	var lights lightspunctual.Lights
	if ext, ok := doc.Extensions[lightspunctual.ExtensionName]; ok {
		var err error
		if lights, err = documentLights(ext); err != nil {
			return nil, err
		}
	}

	var visit func(idx int, offset math3d.Vec3, scale float64) error
	visit = func(idx int, offset math3d.Vec3, scale float64) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", idx)
		}
		node := doc.Nodes[idx]
		t := node.Translation
		pos := offset.Add(math3d.V3(t[0], t[1], t[2]).Scale(scale))
		nodeScale := scale * nodeUniformScale(node)

		if err := l.addNode(s, doc, lights, node, pos, nodeScale); err != nil {
			return fmt.Errorf("node %d (%q): %w", idx, node.Name, err)
		}
		for _, child := range node.Children {
			if err := visit(child, pos, nodeScale); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := visit(root, math3d.Vec3{}, 1); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// nodeUniformScale returns the node's X scale, treating an unset scale as 1.
func nodeUniformScale(node *gltf.Node) float64 {
	if node.Scale == [3]float64{} {
		return 1
	}
	return node.Scale[0]
}

// rootNodes returns the roots of the document's active scene, or every
// parentless node when the document declares no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *GLTFLoader) addNode(s *Scene, doc *gltf.Document, lights lightspunctual.Lights, node *gltf.Node, pos math3d.Vec3, radius float64) error {
	if ext, ok := node.Extensions[lightspunctual.ExtensionName]; ok {
		idx, err := nodeLightIndex(ext)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(lights) {
			return fmt.Errorf("light %d out of range", idx)
		}
		light := lights[idx]
		if light.Type != lightspunctual.TypePoint {
			// Only point lights are modeled; directional and spot lights are skipped.
			return nil
		}
		intensity := 1.0
		if light.Intensity != nil {
			intensity = *light.Intensity
		}
		s.AddLight(NewLight(intensity*l.IntensityScale, pos))
		return nil
	}

	var material *gltf.Material
	switch {
	case extraString(node.Extras, extraShape) == shapeSphere:
		if mi, ok := extraFloat(node.Extras, extraMaterial); ok {
			m, err := materialAt(doc, int(mi))
			if err != nil {
				return err
			}
			material = m
		}
	case node.Mesh != nil && l.MeshNodesAsSpheres:
		if *node.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("mesh %d out of range", *node.Mesh)
		}
		if prims := doc.Meshes[*node.Mesh].Primitives; len(prims) > 0 && prims[0].Material != nil {
			m, err := materialAt(doc, *prims[0].Material)
			if err != nil {
				return err
			}
			material = m
		}
	default:
		return nil
	}

	color, diffuse, specular := sphereMaterial(material)
	s.AddSphere(NewSphereWithMaterial(radius, pos, color, diffuse, specular))
	return nil
}

func materialAt(doc *gltf.Document, idx int) (*gltf.Material, error) {
	if idx < 0 || idx >= len(doc.Materials) {
		return nil, fmt.Errorf("material %d out of range", idx)
	}
	return doc.Materials[idx], nil
}

// sphereMaterial maps a glTF PBR material onto albedo and Phong coefficients:
// base color becomes the 0-255 albedo, 1-roughness becomes the specular
// coefficient and the diffuse coefficient is read back from extras.
func sphereMaterial(m *gltf.Material) (color math3d.Vec3, diffuse, specular float64) {
	color, diffuse, specular = math3d.Splat(255), 1, 0
	if m == nil {
		return
	}
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if c := pbr.BaseColorFactor; c != nil {
			color = math3d.V3(c[0], c[1], c[2]).Scale(255)
		}
		if r := pbr.RoughnessFactor; r != nil {
			specular = 1 - *r
		}
	}
	if d, ok := extraFloat(m.Extras, extraDiffuse); ok {
		diffuse = d
	}
	return
}

// ToDocument converts a scene into a glTF document. Spheres become tagged
// nodes with uniform scale equal to their radius; lights become
// KHR_lights_punctual point lights.
func ToDocument(s *Scene) *gltf.Document {
	doc := &gltf.Document{
		Asset:      gltf.Asset{Generator: "raylight", Version: "2.0"},
		Scene:      gltf.Index(0),
		Extensions: gltf.Extensions{},
	}
	root := &gltf.Scene{Name: "raylight"}

	for i := range s.spheres {
		sp := &s.spheres[i]
		c := sp.color.Scale(1.0 / 255)
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: fmt.Sprintf("sphere-%d", i),
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{c.X, c.Y, c.Z, 1},
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1 - sp.specular),
			},
			Extras: map[string]any{extraDiffuse: sp.diffuse},
		})
		root.Nodes = append(root.Nodes, len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        fmt.Sprintf("sphere-%d", i),
			Translation: [3]float64{sp.position.X, sp.position.Y, sp.position.Z},
			Scale:       [3]float64{sp.radius, sp.radius, sp.radius},
			Extras: map[string]any{
				extraShape:    shapeSphere,
				extraMaterial: i,
			},
		})
	}

	if len(s.lights) > 0 {
		lights := make(lightspunctual.Lights, 0, len(s.lights))
		for i := range s.lights {
			lt := &s.lights[i]
			lights = append(lights, &lightspunctual.Light{
				Type:      lightspunctual.TypePoint,
				Name:      fmt.Sprintf("light-%d", i),
				Color:     &[3]float64{lt.color.X / 255, lt.color.Y / 255, lt.color.Z / 255},
				Intensity: gltf.Float(lt.intensity),
			})
			root.Nodes = append(root.Nodes, len(doc.Nodes))
			doc.Nodes = append(doc.Nodes, &gltf.Node{
				Name:        fmt.Sprintf("light-%d", i),
				Translation: [3]float64{lt.position.X, lt.position.Y, lt.position.Z},
				Extensions: gltf.Extensions{
					lightspunctual.ExtensionName: lightRef{Light: i},
				},
			})
		}
		doc.Extensions[lightspunctual.ExtensionName] = lightsEnvelope{Lights: lights}
		doc.ExtensionsUsed = append(doc.ExtensionsUsed, lightspunctual.ExtensionName)
	}

	doc.Scenes = []*gltf.Scene{root}
	return doc
}

// lightsEnvelope and lightRef are the KHR_lights_punctual JSON objects at
// document and node level. The extension's own Lights and LightIndex types
// marshal as a bare array and a bare number.
type lightsEnvelope struct {
	Lights lightspunctual.Lights `json:"lights"`
}

type lightRef struct {
	Light int `json:"light"`
}

// documentLights accepts the decoded extension types, the export envelope,
// or raw JSON left undecoded by the library.
func documentLights(ext any) (lightspunctual.Lights, error) {
	switch v := ext.(type) {
	case lightspunctual.Lights:
		return v, nil
	case lightsEnvelope:
		return v.Lights, nil
	case *lightsEnvelope:
		return v.Lights, nil
	case json.RawMessage:
		var env lightsEnvelope
		if err := json.Unmarshal(v, &env); err != nil {
			return nil, fmt.Errorf("decode %s: %w", lightspunctual.ExtensionName, err)
		}
		return env.Lights, nil
	}
	return nil, fmt.Errorf("unexpected %s payload %T", lightspunctual.ExtensionName, ext)
}

func nodeLightIndex(ext any) (int, error) {
	switch v := ext.(type) {
	case lightspunctual.LightIndex:
		return int(v), nil
	case lightRef:
		return v.Light, nil
	case *lightRef:
		return v.Light, nil
	case json.RawMessage:
		var ref lightRef
		if err := json.Unmarshal(v, &ref); err != nil {
			return 0, fmt.Errorf("decode light reference: %w", err)
		}
		return ref.Light, nil
	}
	return 0, fmt.Errorf("unexpected light reference %T", ext)
}

// SaveGLTF writes the scene to path, as binary GLB when the extension is .glb.
func SaveGLTF(s *Scene, path string) error {
	doc := ToDocument(s)
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("save gltf: %w", err)
	}
	return nil
}

func extraFloat(extras any, key string) (float64, bool) {
	m, ok := extras.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func extraString(extras any, key string) string {
	m, ok := extras.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
