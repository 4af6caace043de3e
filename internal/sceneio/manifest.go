// Package sceneio loads a scene manifest (JSON) and the mesh files its
// models reference (an OBJ subset), bakes per-model affine transforms into
// world-space triangles, and produces a scene.Scene. It is the "scene
// loader" of spec.md section 4.1.
package sceneio

// manifest mirrors the external JSON interface documented in spec.md
// section 6.
type manifest struct {
	Camera    cameraJSON   `json:"camera"`
	Spheres   []sphereJSON `json:"spheres"`
	Triangles []triJSON    `json:"triangles"`
	Models    []modelJSON  `json:"models"`
}

type cameraJSON struct {
	Position  [3]float32 `json:"position"`
	Rotation  [3]float32 `json:"rotation"`
	FOV       float32    `json:"fov"`
	NearPlane float32    `json:"nearPlane"`
	FarPlane  float32    `json:"farPlane"`
}

type materialJSON struct {
	Color               [3]float32 `json:"color"`
	EmissionColor       [3]float32 `json:"emissionColor"`
	EmissionStrength    float32    `json:"emissionStrength"`
	Smoothness          float32    `json:"smoothness"`
	SpecularProbability float32    `json:"specularProbability"`
}

type sphereJSON struct {
	Center [3]float32 `json:"center"`
	Radius float32    `json:"radius"`
	materialJSON
}

type triJSON struct {
	V0 [3]float32 `json:"v0"`
	V1 [3]float32 `json:"v1"`
	V2 [3]float32 `json:"v2"`
	materialJSON
}

type modelJSON struct {
	Path     string     `json:"path"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
	materialJSON
}
