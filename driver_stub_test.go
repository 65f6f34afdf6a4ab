package overlay

import "log/slog"

// drawRecord captures one driver draw call for inspection.
type drawRecord struct {
	cmd      DrawCommand
	vw, vh   uint32
	pipeline bool
}

// scissorRecord captures one ScissorBegin call.
type scissorRecord struct {
	x, y int32
	w, h uint32
}

// stubDriver is a recording Driver used across the package tests.
type stubDriver struct {
	ident        string
	compatIdents []string // empty means compatible with everything
	initErr      error

	inits int
	frees int

	blendBegins int
	blendEnds   int

	draws       []drawRecord
	scissors    []scissorRecord
	scissorEnds int

	mvp       *Matrix4
	transform bool

	fontErr error
	font    *Font

	logger *slog.Logger
}

func newStubDriver(ident string) *stubDriver {
	return &stubDriver{ident: ident}
}

func (s *stubDriver) Kind() Kind    { return KindGeneric }
func (s *stubDriver) Ident() string { return s.ident }

func (s *stubDriver) Compatible(videoIdent string) bool {
	if len(s.compatIdents) == 0 {
		return true
	}
	for _, ident := range s.compatIdents {
		if ident == videoIdent {
			return true
		}
	}
	return false
}

func (s *stubDriver) HandlesTransform() bool { return s.transform }

func (s *stubDriver) Init(videoCtx any, isThreaded bool) error {
	s.inits++
	return s.initErr
}

func (s *stubDriver) Free() { s.frees++ }

func (s *stubDriver) BlendBegin(backendCtx any) { s.blendBegins++ }
func (s *stubDriver) BlendEnd(backendCtx any)   { s.blendEnds++ }

func (s *stubDriver) DefaultMVP(backendCtx any) *Matrix4 { return s.mvp }

func (s *stubDriver) DefaultVertices() []float32 {
	return []float32{0, 0, 1, 0, 0, 1, 1, 1}
}

func (s *stubDriver) DefaultTexCoords() []float32 {
	return []float32{0, 1, 1, 1, 0, 0, 1, 0}
}

func (s *stubDriver) Draw(cmd *DrawCommand, backendCtx any, vw, vh uint32) {
	s.draws = append(s.draws, drawRecord{cmd: *cmd, vw: vw, vh: vh})
}

func (s *stubDriver) DrawPipeline(cmd *DrawCommand, disp *Display, backendCtx any, vw, vh uint32) {
	s.draws = append(s.draws, drawRecord{cmd: *cmd, vw: vw, vh: vh, pipeline: true})
}

func (s *stubDriver) ScissorBegin(backendCtx any, vw, vh uint32, x, y int32, w, h uint32) {
	s.scissors = append(s.scissors, scissorRecord{x: x, y: y, w: w, h: h})
}

func (s *stubDriver) ScissorEnd(backendCtx any, vw, vh uint32) { s.scissorEnds++ }

func (s *stubDriver) FontInitFirst(videoCtx any, fontPath string, fontSize float32, isThreaded bool) (*Font, error) {
	if s.fontErr != nil {
		return nil, s.fontErr
	}
	if s.font != nil {
		return s.font, nil
	}
	return &Font{path: fontPath, size: fontSize}, nil
}

func (s *stubDriver) SetLogger(l *slog.Logger) { s.logger = l }

// displayWithStub wires a stub driver straight into a session, skipping
// registry selection.
func displayWithStub(opts ...Option) (*Display, *stubDriver) {
	d := New(opts...)
	drv := newStubDriver("stub")
	d.driver = drv
	return d, drv
}
