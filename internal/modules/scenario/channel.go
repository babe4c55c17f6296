package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aristath/scenario-planner/pkg/formulas"
	"gopkg.in/yaml.v3"
)

// ErrUnknownChannel is returned when a channel name is not part of the closed channel set
var ErrUnknownChannel = errors.New("unknown channel")

// Channel identifies a marketing/sales channel. The set is closed: every
// ChannelVector carries exactly one value per channel.
type Channel int

const (
	ChannelPaid Channel = iota
	ChannelOrganic
	ChannelCRM
	ChannelSocialPaid
	ChannelTikTok
	ChannelAffiliate

	ChannelCount = 6
)

// AllChannels lists every channel in display order
var AllChannels = [ChannelCount]Channel{
	ChannelPaid,
	ChannelOrganic,
	ChannelCRM,
	ChannelSocialPaid,
	ChannelTikTok,
	ChannelAffiliate,
}

var channelKeys = [ChannelCount]string{"paid", "organic", "crm", "social_paid", "tiktok", "affiliate"}

var channelLabels = [ChannelCount]string{"Paid", "Organic", "CRM", "Social Paid", "TikTok", "Affiliate"}

// String returns the wire key of the channel (e.g. "social_paid")
func (c Channel) String() string {
	if c < 0 || int(c) >= ChannelCount {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelKeys[c]
}

// Label returns the human readable channel name (e.g. "Social Paid")
func (c Channel) Label() string {
	if c < 0 || int(c) >= ChannelCount {
		return c.String()
	}
	return channelLabels[c]
}

// ParseChannel resolves a channel name. Matching ignores case, spaces, dashes
// and underscores, so "social_paid", "Social Paid" and "socialPaid" are equal.
// "other" is accepted as an alias for the TikTok slot.
func ParseChannel(name string) (Channel, error) {
	switch normalizeChannelName(name) {
	case "paid":
		return ChannelPaid, nil
	case "organic":
		return ChannelOrganic, nil
	case "crm":
		return ChannelCRM, nil
	case "socialpaid":
		return ChannelSocialPaid, nil
	case "tiktok", "other":
		return ChannelTikTok, nil
	case "affiliate":
		return ChannelAffiliate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

func normalizeChannelName(name string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// ChannelVector holds one value per channel. Being a fixed-size array, it
// can never miss a channel or grow a new one.
type ChannelVector [ChannelCount]float64

// Uniform returns a vector with every channel set to value
func Uniform(value float64) ChannelVector {
	var v ChannelVector
	for i := range v {
		v[i] = value
	}
	return v
}

// Get returns the value for a channel
func (v ChannelVector) Get(c Channel) float64 {
	return v[c]
}

// Set returns a copy of the vector with one channel replaced
func (v ChannelVector) Set(c Channel, value float64) ChannelVector {
	v[c] = value
	return v
}

// Sum returns the channel total
func (v ChannelVector) Sum() float64 {
	return formulas.Sum(v[:])
}

// Map applies fn to every channel
func (v ChannelVector) Map(fn func(c Channel, value float64) float64) ChannelVector {
	var out ChannelVector
	for _, c := range AllChannels {
		out[c] = fn(c, v[c])
	}
	return out
}

// Adjust applies a signed percentage per channel: v[c] * (1 + pct[c]/100)
func (v ChannelVector) Adjust(pct ChannelVector) ChannelVector {
	return v.Map(func(c Channel, value float64) float64 {
		return value * (1 + pct[c]/100)
	})
}

// Scale multiplies every channel by factor
func (v ChannelVector) Scale(factor float64) ChannelVector {
	return v.Map(func(_ Channel, value float64) float64 {
		return value * factor
	})
}

// DivideBy divides channel by channel, yielding 0 where the divisor is 0
func (v ChannelVector) DivideBy(divisor ChannelVector) ChannelVector {
	return v.Map(func(c Channel, value float64) float64 {
		return formulas.SafeDivide(value, divisor[c], 0)
	})
}

// MarshalJSON encodes the vector as an object keyed by channel, in channel order
func (v ChannelVector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range AllChannels {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := json.Marshal(v[c])
		if err != nil {
			return nil, fmt.Errorf("failed to encode channel %s: %w", c, err)
		}
		fmt.Fprintf(&buf, "%q:", c.String())
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by channel. Missing channels are
// zero, unknown channels are an error.
func (v *ChannelVector) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return v.fromMap(raw)
}

// MarshalYAML encodes the vector as a mapping in channel order
func (v ChannelVector) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range AllChannels {
		var value yaml.Node
		if err := value.Encode(v[c]); err != nil {
			return nil, fmt.Errorf("failed to encode channel %s: %w", c, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.String()},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping keyed by channel, with the same rules as JSON
func (v *ChannelVector) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]float64
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return v.fromMap(raw)
}

func (v *ChannelVector) fromMap(raw map[string]float64) error {
	var out ChannelVector
	for name, value := range raw {
		c, err := ParseChannel(name)
		if err != nil {
			return err
		}
		out[c] = value
	}
	*v = out
	return nil
}
