package newsfeed

import (
	"io"

	yaml "gopkg.in/yaml.v2"
)

// Config maps the currency slugs used by the news feed to the IRI of the
// corresponding cryptocurrency in the triple store.
type Config struct {
	Currencies map[string]string `yaml:"currencies"`
}

// CryptocurrencyIRI looks up the entity IRI for a feed currency slug
func (c *Config) CryptocurrencyIRI(currency string) (string, bool) {
	iri, ok := c.Currencies[currency]
	return iri, ok
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)

	return cfg, err
}
