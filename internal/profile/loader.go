package profile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a profile YAML file and returns it with the raw bytes
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Profile, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&p); err != nil {
		return nil, nil, err
	}

	if err := Validate(&p); err != nil {
		return nil, data, err
	}

	return &p, data, nil
}

// Validate checks the structural invariants of a profile. Rule IDs are
// resolved later by the scoring catalogue, which owns the registry.
func Validate(p *Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if len(p.Rules) == 0 {
		return fmt.Errorf("profile %q has no rules", p.Name)
	}

	seen := make(map[string]bool, len(p.Rules))
	for i, r := range p.Rules {
		if r.ID == "" {
			return fmt.Errorf("rule %d has no id", i)
		}
		label := r.Label
		if label == "" {
			label = r.ID
		}
		if seen[label] {
			return fmt.Errorf("duplicate rule label %q", label)
		}
		seen[label] = true
	}

	return nil
}

// Hash generates a SHA256 hash from a profile (canonical JSON)
// 주의: map 대신 struct 사용으로 해시 재현성 보장
func Hash(p *Profile) (string, error) {
	jsonBytes, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
