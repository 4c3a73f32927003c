package core

// MeshGrid is a structured grid of 3D points stored row-major, used to
// tessellate surfaces and apertures for display clients. Point (i,j) of a
// Rows x Cols grid lives at index i*Cols+j of each coordinate slice.
type MeshGrid struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	Z    []float64 `json:"z"`
}

// NewMeshGrid allocates a zeroed rows x cols grid
func NewMeshGrid(rows, cols int) *MeshGrid {
	n := rows * cols
	return &MeshGrid{
		Rows: rows,
		Cols: cols,
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Z:    make([]float64, n),
	}
}

// Index returns the flat index of grid point (i,j)
func (m *MeshGrid) Index(i, j int) int {
	return i*m.Cols + j
}

// At returns grid point (i,j) as a vector
func (m *MeshGrid) At(i, j int) Vec3 {
	k := m.Index(i, j)
	return Vec3{X: m.X[k], Y: m.Y[k], Z: m.Z[k]}
}

// Set stores a vector at grid point (i,j)
func (m *MeshGrid) Set(i, j int, p Vec3) {
	k := m.Index(i, j)
	m.X[k] = p.X
	m.Y[k] = p.Y
	m.Z[k] = p.Z
}

// Transform maps every grid point through a frame: global = rotation*local + origin
func (m *MeshGrid) Transform(origin Vec3, rotation Rotation) {
	for k := range m.X {
		p := rotation.Apply(Vec3{X: m.X[k], Y: m.Y[k], Z: m.Z[k]}).Add(origin)
		m.X[k] = p.X
		m.Y[k] = p.Y
		m.Z[k] = p.Z
	}
}
