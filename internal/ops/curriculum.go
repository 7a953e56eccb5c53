package ops

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	topicModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/topic"
)

// curriculumFile 课程导入文件格式
type curriculumFile struct {
	Sections []sectionEntry `koanf:"sections"`
}

type sectionEntry struct {
	ID        string          `koanf:"id"`
	Title     string          `koanf:"title"`
	SubTopics []subTopicEntry `koanf:"sub_topics"`
}

type subTopicEntry struct {
	ID             string `koanf:"id"`
	Title          string `koanf:"title"`
	Introduction   string `koanf:"introduction"`
	Explanation    string `koanf:"explanation"`
	Implementation string `koanf:"implementation"`
	Example        string `koanf:"example"`
	PptURL         string `koanf:"ppt_url"`
	Premium        bool   `koanf:"premium"`
}

// LoadCurriculum 读取 yaml 课程文件，章节与课时的 order 取文件中的先后顺序
func LoadCurriculum(path string) ([]topicModel.TopicSection, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("读取课程文件失败: %w", err)
	}

	var f curriculumFile
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("解析课程文件失败: %w", err)
	}
	if len(f.Sections) == 0 {
		return nil, fmt.Errorf("课程文件 %s 中没有章节", path)
	}

	seen := make(map[string]bool)
	sections := make([]topicModel.TopicSection, 0, len(f.Sections))
	for i, s := range f.Sections {
		if s.ID == "" || s.Title == "" {
			return nil, fmt.Errorf("第 %d 个章节缺少 id 或 title", i+1)
		}
		section := topicModel.TopicSection{ID: s.ID, Title: s.Title, Order: i + 1}
		for j, st := range s.SubTopics {
			if st.ID == "" || st.Title == "" {
				return nil, fmt.Errorf("章节 %s 的第 %d 个课时缺少 id 或 title", s.ID, j+1)
			}
			if seen[st.ID] {
				return nil, fmt.Errorf("课时 id 重复: %s", st.ID)
			}
			seen[st.ID] = true

			sub := topicModel.SubTopic{
				ID:             st.ID,
				TopicSectionID: s.ID,
				Title:          st.Title,
				Order:          j + 1,
				Introduction:   st.Introduction,
				Explanation:    st.Explanation,
				Implementation: st.Implementation,
				Example:        st.Example,
				IsPremium:      st.Premium,
			}
			if st.PptURL != "" {
				url := st.PptURL
				sub.PptURL = &url
			}
			section.SubTopics = append(section.SubTopics, sub)
		}
		sections = append(sections, section)
	}
	return sections, nil
}
