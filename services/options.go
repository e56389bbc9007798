package services

import (
	"libdb-finder/config"
	"libdb-finder/extractor"
)

// ExtractOptions 는 extract 설정을 추출기 옵션으로 옮긴다. 0 이나 빈 목록은 기본값을 뜻한다.
func ExtractOptions(cfg config.ExtractConfig) extractor.Options {
	opts := extractor.DefaultOptions()
	if cfg.MinLength > 0 {
		opts.Policy.MinLength = cfg.MinLength
	}
	if cfg.MaxLength > 0 {
		opts.Policy.MaxLength = cfg.MaxLength
	}
	if len(cfg.Blacklist) > 0 {
		opts.Policy.Blacklist = append([]string(nil), cfg.Blacklist...)
	}
	if len(cfg.StripTags) > 0 {
		opts.StripTags = append([]string(nil), cfg.StripTags...)
	}
	if len(cfg.TableKeywords) > 0 {
		opts.TableKeywords = append([]string(nil), cfg.TableKeywords...)
	}
	if cfg.TableKeywordMin > 0 {
		opts.TableKeywordMin = cfg.TableKeywordMin
	}
	if cfg.DenseThreshold > 0 {
		opts.DenseThreshold = cfg.DenseThreshold
	}
	return opts
}

// ProbePhrases returns the configured sub-page link phrases, or the defaults.
func ProbePhrases(cfg config.ExtractConfig) []string {
	if len(cfg.ProbePhrases) > 0 {
		return append([]string(nil), cfg.ProbePhrases...)
	}
	return append([]string(nil), extractor.DefaultProbePhrases...)
}
