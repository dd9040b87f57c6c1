package driver

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
)

func wrapAdapter(a Adapter, info Info) Driver {
	generator, ok := a.(VideoRecorder)
	if !ok {
		return nil
	}

	d := &adapterWrapper{
		Adapter: a,
		id:      uuid.NewString(),
		info:    info,
		state:   StateClosed,
	}
	return &videoAdapterWrapper{
		adapterWrapper: d,
		VideoRecorder:  generator,
	}
}

type adapterWrapper struct {
	Adapter
	id    string
	info  Info
	mu    sync.Mutex
	state State
}

func (w *adapterWrapper) ID() string {
	return w.id
}

func (w *adapterWrapper) Info() Info {
	return w.info
}

func (w *adapterWrapper) Status() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *adapterWrapper) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateOpened, w.Adapter.Open)
}

func (w *adapterWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateClosed, w.Adapter.Close)
}

func (w *adapterWrapper) Properties() []prop.Media {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return nil
	}

	p := w.Adapter.Properties()
	for i := range p {
		p[i].DeviceID = w.id
	}
	return p
}

type videoAdapterWrapper struct {
	*adapterWrapper
	VideoRecorder
}

func (w *videoAdapterWrapper) VideoRecord(p prop.Media) (r video.Reader, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var recordErr error
	err = w.state.Update(StateRunning, func() error {
		r, recordErr = w.VideoRecorder.VideoRecord(p)
		return recordErr
	})
	if recordErr != nil {
		// A failed start leaves the device in an unknown state.
		_ = w.state.Update(StateClosed, w.Adapter.Close)
	}
	return r, err
}
