package shortcut

// DefaultRecords returns the records a fresh store is seeded with.
// Each call yields new ids so two stores never share identifiers.
func DefaultRecords() []Record {
	now := Now()
	seed := []struct {
		key, title string
		aliases    []string
		tags       []string
		action     Action
	}{
		{"GS", "Google", []string{"グーグル", "ぐーぐる", "検索"}, []string{"検索"}, OpenNewTab{URL: "https://www.google.com/"}},
		{"GM", "Gmail", []string{"ジーメール", "メール", "gmail"}, []string{"仕事", "連絡"}, JumpToTab{URL: "https://mail.google.com/"}},
		{"T", "Twitter", []string{"ツイッター", "ついったー", "X"}, []string{"SNS"}, JumpToTab{URL: "https://twitter.com/"}},
		{"F", "Facebook", []string{"フェイスブック", "ふぇいすぶっく"}, []string{"SNS"}, JumpToTab{URL: "https://www.facebook.com/"}},
		{"Y", "YouTube", []string{"ユーチューブ", "ゆーちゅーぶ", "動画"}, []string{"動画", "エンタメ"}, JumpToTab{URL: "https://www.youtube.com/"}},
		{"P", "Incognito", []string{"シークレット", "プライベート"}, []string{}, OpenCurrentInPrivate{}},
	}
	out := make([]Record, len(seed))
	for i, s := range seed {
		out[i] = Record{
			ID:        NewID(),
			Key:       s.key,
			Title:     s.title,
			Aliases:   s.aliases,
			Tags:      s.tags,
			Action:    s.action,
			SortOrder: i,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return out
}
