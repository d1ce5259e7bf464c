package linkedin

import (
	"encoding/json"
	"os"
	"time"
)

// ContactedList tracks candidates already reached out to, so repeated runs
// against the same job do not message the same person twice.
type ContactedList struct {
	Items []*ContactedCandidate
}

type ContactedCandidate struct {
	URL         string    `json:"url"`
	FullName    string    `json:"full_name,omitempty"`
	ContactedAt time.Time `json:"contacted_at"`
}

// ContactedFromFile loads a contacted list. A missing path yields an empty
// list; a missing or empty file is not an error either.
func ContactedFromFile(path string) (*ContactedList, error) {
	if path == "" {
		return &ContactedList{}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ContactedList{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &ContactedList{}, nil
	}

	var list ContactedList
	if err := json.NewDecoder(file).Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (l *ContactedList) URLs() []string {
	urls := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		urls = append(urls, item.URL)
	}
	return urls
}

// AppendProfiles records the given profiles as contacted at now.
func (l *ContactedList) AppendProfiles(profiles []*Profile, now time.Time) {
	for _, p := range profiles {
		l.Items = append(l.Items, &ContactedCandidate{
			URL:         p.LinkedInURL,
			FullName:    p.FullName,
			ContactedAt: now.UTC(),
		})
	}
}

func (l *ContactedList) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}
