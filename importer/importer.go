package importer

import (
	"github.com/google/uuid"
	"github.com/melodia-cli/melodia/log"
	"github.com/melodia-cli/melodia/media"
)

// Result is the outcome of one import job.
type Result struct {
	// JobID identifies which submission produced this result.
	JobID string

	// Items holds the imported tracks. An empty slice with a nil Err is a
	// legitimate outcome (an empty remote playlist), not a failure.
	Items []media.Item

	// RemoteTitle is the provider-reported playlist title, used to suggest
	// a local playlist name.
	RemoteTitle string

	// Err is the terminal failure of the job, nil on success.
	Err error
}

// Fetcher retrieves a remote playlist. *YouTube and *SoundCloud implement it.
type Fetcher interface {
	FetchPlaylist(rawURL string) (*Result, error)
}

// Importer runs import jobs in the background and delivers results over a
// channel. One job runs per Submit call; guarding against concurrent
// submissions is the caller's job (the TUI disables import while one runs).
type Importer struct {
	youtube    Fetcher
	soundcloud Fetcher
	results    chan Result
}

// New returns an importer over the default provider clients.
func New() *Importer {
	return &Importer{
		youtube:    NewYouTube(),
		soundcloud: NewSoundCloud(),
		results:    make(chan Result, 1),
	}
}

// Results returns the channel import outcomes are delivered on.
// The channel is buffered so a finished job never blocks on an abandoned
// consumer.
func (i *Importer) Results() <-chan Result {
	return i.results
}

// Submit classifies the URL and starts the fetch on its own goroutine.
// Classification failures surface immediately; everything after that arrives
// through Results. The returned id ties the eventual result to this call.
func (i *Importer) Submit(rawURL string) (string, error) {
	provider, err := Classify(rawURL)
	if err != nil {
		return "", err
	}

	var fetcher Fetcher
	switch provider {
	case media.ProviderYouTube:
		fetcher = i.youtube
	case media.ProviderSoundCloud:
		fetcher = i.soundcloud
	}

	jobID := uuid.NewString()
	log.Infof("import job %s started for %s", jobID, rawURL)

	go func() {
		result, err := fetcher.FetchPlaylist(rawURL)
		if err != nil {
			i.deliver(Result{JobID: jobID, Err: err})
			return
		}

		result.JobID = jobID
		i.deliver(*result)
	}()

	return jobID, nil
}

// deliver hands the result over without ever blocking the job goroutine.
func (i *Importer) deliver(result Result) {
	select {
	case i.results <- result:
	default:
		log.Warnf("import job %s finished with no consumer, result dropped", result.JobID)
	}
}
