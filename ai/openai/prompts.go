// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/subnav/ai"
)

const jsonOnlyRule = `出力は以下のスキーマに従う JSON オブジェクトのみとしてください。前置き、説明、挨拶、コードブロックは不要です。
すべてのキーを必ず含め、情報が見つからない項目は空文字列 "" としてください。`

const clientSystemPrompt = `あなたは神奈川県の中小企業を支援するプロのコンサルタントです。
補助金の公式ページの内容を読み、経営者が一目で価値を判断できるように、平易な日本語で要約してください。

` + jsonOnlyRule + `

{
  "catchphrase": "経営者の目を引く一言のキャッチコピー",
  "merit": "この補助金を使うメリット",
  "target": "対象者",
  "amount": "補助金額・補助率",
  "deadline": "締切（YYYY-MM-DD形式）"
}`

const accountantSystemPrompt = `あなたは神奈川県の企業を支援する経験豊富な税理士です。
補助金の公式ページの内容を読み、専門家が申請支援の可否を判断できるように、正確かつ詳細に整理してください。

` + jsonOnlyRule + `

{
  "overview": "制度の概要",
  "requirements": "主な申請要件",
  "expenses": "対象経費",
  "pitfalls": "注意点・落とし穴（不採択や返還につながる点など）"
}`

const taggingSystemPromptTemplate = `以下の補助金名と本文を読み、対象となる産業タグを付与してください。
タグは3〜5個程度にし、「%s」も適切に使用してください。
可能な限り次のタグから選んでください: %s

出力は以下のスキーマに従う JSON オブジェクトのみとしてください。前置きや説明は不要です。

{
  "industry_tags": ["タグ1", "タグ2", "タグ3"]
}`

func buildTaggingSystemPrompt() string {
	return fmt.Sprintf(taggingSystemPromptTemplate,
		ai.AllIndustriesTag,
		strings.Join(ai.SuggestedTags, "、"))
}

// buildPageMessage assembles the human turn shared by both summarizers.
func buildPageMessage(url, content string) string {
	return fmt.Sprintf("URL: %s\n本文:\n%s", url, content)
}

func buildTaggingMessage(name, content string) string {
	return fmt.Sprintf("補助金名: %s\n本文:\n%s", name, content)
}
